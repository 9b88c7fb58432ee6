package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/binalign/bsdiff"
	"github.com/binalign/bsdiff/bzsink"
)

// run parses args, diffs oldfile against newfile, and atomically writes
// the patch to patchfile. It returns the process exit code rather than
// calling os.Exit itself, so it can be exercised directly from tests.
func run(out, errOut io.Writer, args []string) int {
	flagSet := flag.NewFlagSet("bsdiff", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	maxWrite := flagSet.Int32("max-write-size", 0, "cap each sink write to this many bytes (0 means the default cap of 2147483647)")
	flagSet.Usage = func() {
		fmt.Fprintln(errOut, "usage: bsdiff [flags] oldfile newfile patchfile")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	rest := flagSet.Args()
	if len(rest) != 3 {
		flagSet.Usage()
		return 2
	}
	oldpath, newpath, patchpath := rest[0], rest[1], rest[2]

	oldbin, err := os.ReadFile(oldpath)
	if err != nil {
		fmt.Fprintln(errOut, "bsdiff:", err)
		return 1
	}
	newbin, err := os.ReadFile(newpath)
	if err != nil {
		fmt.Fprintln(errOut, "bsdiff:", err)
		return 1
	}

	var patchBuf bytes.Buffer
	sink, err := bzsink.New(&patchBuf, int64(len(newbin)))
	if err != nil {
		fmt.Fprintln(errOut, "bsdiff:", err)
		return 1
	}

	var opts []bsdiff.Option
	if *maxWrite > 0 {
		opts = append(opts, bsdiff.WithMaxWriteSize(*maxWrite))
	}

	if err := bsdiff.Diff(oldbin, newbin, sink, opts...); err != nil {
		fmt.Fprintln(errOut, "bsdiff:", err)
		return 1
	}
	if err := sink.Close(); err != nil {
		fmt.Fprintln(errOut, "bsdiff:", err)
		return 1
	}

	if err := atomic.WriteFile(patchpath, bytes.NewReader(patchBuf.Bytes())); err != nil {
		fmt.Fprintln(errOut, "bsdiff:", err)
		return 1
	}

	fmt.Fprintf(out, "wrote %s (%d bytes)\n", patchpath, patchBuf.Len())
	return 0
}
