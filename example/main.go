package main

import (
	"fmt"
	"log"
	"os"

	"github.com/javi11/exepack"
)

// Minimal pack/unpack CLI mirroring the classic gzexe invocation:
//
//	exepack [-gz|-bz2|-xz|-exz|-zstd] [-d] [-k] <files...>
//
// -d unpacks instead of packing, -k keeps a backup of the replaced file.
func main() {
	algo := exepack.Gzip
	decompress := false
	keepBackup := false
	var files []string

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-gz":
			algo = exepack.Gzip
		case "-bz2":
			algo = exepack.Bzip2
		case "-xz":
			algo = exepack.Xz
		case "-exz":
			algo = exepack.EmbeddedXz
		case "-zstd":
			algo = exepack.Zstd
		case "-d":
			decompress = true
		case "-k":
			keepBackup = true
		default:
			if len(arg) > 1 && arg[0] == '-' {
				log.Fatalf("unknown option: %s", arg)
			}
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		log.Fatalf("usage: %s [-gz|-bz2|-xz|-exz|-zstd] [-d] [-k] <files...>", os.Args[0])
	}

	reg := exepack.NewRegistry()
	exitCode := 0
	if decompress {
		reports, err := exepack.UnpackAll(reg, files, keepBackup)
		if err != nil {
			log.Printf("unpack: %v", err)
			exitCode = 1
		}
		for _, r := range reports {
			fmt.Printf("%s: restored %d bytes (%s)\n", r.Path, r.RestoredSize, r.Algorithm)
		}
	} else {
		reports, err := exepack.PackAll(reg, files, algo, keepBackup)
		if err != nil {
			log.Printf("pack: %v", err)
			exitCode = 1
		}
		for _, r := range reports {
			fmt.Printf("%s: %d -> %d bytes (%s, %.1f%% saved)\n",
				r.Path, r.OriginalSize, r.PackedSize, r.Algorithm, r.TotalRatio)
		}
	}
	os.Exit(exitCode)
}
