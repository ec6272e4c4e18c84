package exepack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to the original path when Pack keeps a pre-pack
// backup; CompressedSuffix when Unpack keeps the still-packed file aside.
const (
	BackupSuffix     = ".orig"
	CompressedSuffix = ".compressed"
)

// Pack replaces the executable at path with a self-extracting packed file.
// The original is never modified or deleted before the final rename: any
// earlier failure leaves it byte-identical. When keepBackup is set the
// original is first copied to path+".orig".
func Pack(reg Registry, path string, algo Algorithm, keepBackup bool) (*PackReport, error) {
	if err := algo.Valid(); err != nil {
		return nil, fmt.Errorf("%w: %d", err, algo)
	}
	st, err := Validate(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	codec, err := reg.Codec(algo)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("%s: compress %s: %w", path, algo, err)
	}
	blob := reg.Decompressor(algo)
	if algo.NeedsDecompressor() && len(blob) == 0 {
		return nil, fmt.Errorf("%s: %w: %s", path, ErrMissingDecompressor, algo)
	}
	lay := PlanLayout(HeaderReserved, len(blob))
	stub := renderStub(lay, algo)
	if len(stub) > lay.HeaderReserved {
		return nil, fmt.Errorf("%s: %w: %d > %d bytes", path, ErrStubTooLarge, len(stub), lay.HeaderReserved)
	}

	// [stub, zero-padded][blob][payload] assembled in memory, written to a
	// sibling temp file, then renamed over the original in one step.
	packed := make([]byte, lay.PayloadOffset+len(compressed))
	copy(packed, stub)
	copy(packed[lay.DecompressorOffset:], blob)
	copy(packed[lay.PayloadOffset:], compressed)

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".exepack-*")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tmpPath := tmp.Name()
	if err := writeAndClose(tmp, packed); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	backupPath := ""
	if keepBackup {
		backupPath = path + BackupSuffix
		if err := copyFile(path, backupPath, st.Mode().Perm()); err != nil {
			_ = os.Remove(tmpPath)
			return nil, fmt.Errorf("%s: backup: %w", path, err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// The rename produced a new inode; carry the original mode bits over.
	if err := os.Chmod(path, st.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("%s: restore permissions: %w", path, err)
	}

	origSize := int64(len(data))
	compSize := int64(len(compressed))
	return &PackReport{
		Path:             path,
		Algorithm:        algo.String(),
		OriginalSize:     origSize,
		CompressedSize:   compSize,
		DecompressorSize: int64(len(blob)),
		PackedSize:       int64(len(packed)),
		Ratio:            ratio(compSize, origSize),
		TotalRatio:       ratio(compSize+int64(len(blob)), origSize),
		BackupPath:       backupPath,
	}, nil
}

// PackAll packs each path independently and sequentially. One file's failure
// does not stop the others; all failures come back joined, alongside the
// reports of the files that succeeded.
func PackAll(reg Registry, paths []string, algo Algorithm, keepBackup bool) ([]*PackReport, error) {
	var reports []*PackReport
	var errs []error
	for _, p := range paths {
		r, err := Pack(reg, p, algo, keepBackup)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reports = append(reports, r)
	}
	return reports, errors.Join(errs...)
}

func ratio(packed, original int64) float64 {
	if original == 0 {
		return 0
	}
	return 100 - float64(packed)/float64(original)*100
}

func writeAndClose(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func copyFile(src, dst string, perm os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, perm); err != nil {
		return err
	}
	// WriteFile's mode is filtered through the umask; re-apply explicitly.
	return os.Chmod(dst, perm)
}
