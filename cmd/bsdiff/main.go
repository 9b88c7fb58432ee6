// Command bsdiff writes a bzip2-compressed BSDIFF40-style patch file
// that turns an old file into a new file.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}
