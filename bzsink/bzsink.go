// Package bzsink is a concrete bsdiff.Sink: it bzip2-compresses the
// control, diff, and extra streams independently and writes them out in
// the classic BSDIFF40 container original_source/bsdiff.c's header
// comment describes. The core stays agnostic of any container format
// (spec.md §1 non-goal); bzsink is the one demonstrated adapter.
package bzsink

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"

	"github.com/binalign/bsdiff"
)

// magic identifies the container. Readers that don't recognize it
// should refuse the file rather than guess at the layout.
const magic = "BSDIFF40"

// Sink streams each of the three bsdiff.Kind streams into its own
// bzip2.Writer as records arrive, then assembles the BSDIFF40 header
// and the three compressed blocks on Close. The compressed bytes are
// buffered in memory rather than seeked back into, since an arbitrary
// io.Writer need not support Seek.
type Sink struct {
	w       io.Writer
	newSize int64

	ctrlBuf, diffBuf, extraBuf bytes.Buffer
	ctrlZ, diffZ, extraZ       *bzip2.Writer

	closed bool
}

// New returns a Sink that writes to w once Close is called. newSize is
// the length of the target buffer the caller is about to diff against;
// it is recorded in the header verbatim so a reader can size its output
// buffer before applying the patch.
func New(w io.Writer, newSize int64) (*Sink, error) {
	cfg := &bzip2.WriterConfig{Level: bzip2.BestCompression}

	s := &Sink{w: w, newSize: newSize}

	var err error
	if s.ctrlZ, err = bzip2.NewWriter(&s.ctrlBuf, cfg); err != nil {
		return nil, fmt.Errorf("bzsink: control writer: %w", err)
	}
	if s.diffZ, err = bzip2.NewWriter(&s.diffBuf, cfg); err != nil {
		return nil, fmt.Errorf("bzsink: diff writer: %w", err)
	}
	if s.extraZ, err = bzip2.NewWriter(&s.extraBuf, cfg); err != nil {
		return nil, fmt.Errorf("bzsink: extra writer: %w", err)
	}

	return s, nil
}

// Write implements bsdiff.Sink, routing buf to the compressor for kind.
func (s *Sink) Write(buf []byte, kind bsdiff.Kind) (int, error) {
	var z *bzip2.Writer
	switch kind {
	case bsdiff.Control:
		z = s.ctrlZ
	case bsdiff.Diff:
		z = s.diffZ
	case bsdiff.Extra:
		z = s.extraZ
	default:
		return 0, fmt.Errorf("bzsink: unknown kind %v", kind)
	}
	return z.Write(buf)
}

// Close flushes the three compressors and writes the header followed by
// the compressed control, diff, and extra blocks in that order. Close
// must be called exactly once, after the bsdiff.Diff call that used s
// as its Sink has returned with no error; it is not safe to call Write
// after Close.
func (s *Sink) Close() error {
	if s.closed {
		return fmt.Errorf("bzsink: already closed")
	}
	s.closed = true

	if err := s.ctrlZ.Close(); err != nil {
		return fmt.Errorf("bzsink: flushing control stream: %w", err)
	}
	if err := s.diffZ.Close(); err != nil {
		return fmt.Errorf("bzsink: flushing diff stream: %w", err)
	}
	if err := s.extraZ.Close(); err != nil {
		return fmt.Errorf("bzsink: flushing extra stream: %w", err)
	}

	var header [32]byte
	copy(header[:8], magic)
	bsdiff.PutOfft(int64(s.ctrlBuf.Len()), header[8:16])
	bsdiff.PutOfft(int64(s.diffBuf.Len()), header[16:24])
	bsdiff.PutOfft(s.newSize, header[24:32])

	for _, chunk := range [][]byte{header[:], s.ctrlBuf.Bytes(), s.diffBuf.Bytes(), s.extraBuf.Bytes()} {
		if _, err := s.w.Write(chunk); err != nil {
			return fmt.Errorf("bzsink: %w", err)
		}
	}
	return nil
}
