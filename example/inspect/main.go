package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/javi11/exepack"
)

// Prints the self-declared layout of a packed file as JSON.
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <packed-file>", os.Args[0])
	}
	h, err := exepack.Inspect(os.Args[1])
	if err != nil {
		log.Fatalf("inspect: %v", err)
	}
	b, _ := json.MarshalIndent(h, "", "  ")
	fmt.Println(string(b))
}
