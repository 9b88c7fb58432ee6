// Package bsdiff implements the differ half of the Percival bsdiff
// algorithm: given a source buffer and a target buffer, it emits a
// control/diff/extra patch stream that lets the target be reconstructed
// from the source. The inverse operation (applying a patch) is not part
// of this package.
package bsdiff

import (
	"errors"
	"fmt"
	"math"

	"github.com/binalign/bsdiff/sarray"
)

// overheadBytes is the amortized cost, in bytes, of one 24-byte control
// record. A freshly found match must beat free extrapolation by more
// than this many bytes before it is worth emitting a new record for.
// Changing this constant changes the patch stream's bytes; do not.
const overheadBytes = 8

var (
	// ErrAllocFailed is returned when the configured Allocator cannot
	// satisfy a request for the scratch buffer. No output has been
	// produced. A failed request for the suffix index or its rank array
	// is reported as ErrIndexBuildFailed.
	ErrAllocFailed = errors.New("bsdiff: allocation failed")
	// ErrIndexBuildFailed is returned when the suffix array builder
	// cannot complete. No output has been produced.
	ErrIndexBuildFailed = errors.New("bsdiff: suffix index build failed")
)

// Config holds tunables for a Diff/NewIndex call.
type Config struct {
	// MaxWriteSize bounds the length of any single Sink.Write call.
	// Longer byte runs are split into successive writes of up to this
	// size. Zero means math.MaxInt32.
	MaxWriteSize int32
	// Allocator routes the core's allocations (the suffix index, its rank
	// array, and the T+1 scratch buffer). Nil means the default, which
	// never fails.
	Allocator Allocator
}

// Option configures a Config.
type Option func(*Config)

// WithMaxWriteSize sets the sink adapter's write-chunk bound.
func WithMaxWriteSize(n int32) Option {
	return func(c *Config) {
		c.MaxWriteSize = n
	}
}

// WithAllocator injects a caller-supplied Allocator.
func WithAllocator(a Allocator) Option {
	return func(c *Config) {
		c.Allocator = a
	}
}

func resolveConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxWriteSize <= 0 {
		cfg.MaxWriteSize = math.MaxInt32
	}
	if cfg.Allocator == nil {
		cfg.Allocator = defaultAllocator{}
	}
	return cfg
}

// Index is a suffix array built once over a source buffer and reusable
// across many Diff calls against that same source — e.g. one base build
// diffed against a fleet of client versions.
type Index struct {
	source []byte
	sa     sarray.Index
	config Config
}

// NewIndex builds the suffix array over source. Construction is the
// O(n log n) step spec.md calls the Suffix Array Builder; callers that
// only need one Diff call can skip this and use the package-level Diff
// function instead.
func NewIndex(source []byte, opts ...Option) (*Index, error) {
	cfg := resolveConfig(opts)

	sa, err := sarray.Build(source, cfg.Allocator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexBuildFailed, err)
	}

	return &Index{source: source, sa: sa, config: cfg}, nil
}

// Diff computes the patch stream that turns idx's source into target and
// writes it to sink. It may be called repeatedly, concurrently, against
// independent targets.
func (idx *Index) Diff(target []byte, sink Sink) error {
	scratch, err := idx.config.Allocator.ByteSlice(len(target) + 1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAllocFailed, err)
	}

	return runEmit(idx.source, idx.sa, target, scratch, sink, idx.config.MaxWriteSize)
}

// Diff is the one-shot convenience form of NewIndex followed by
// (*Index).Diff: it builds the suffix array over source and immediately
// emits the patch stream turning source into target.
func Diff(source, target []byte, sink Sink, opts ...Option) error {
	idx, err := NewIndex(source, opts...)
	if err != nil {
		return err
	}
	return idx.Diff(target, sink)
}
