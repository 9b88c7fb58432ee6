// Package patchtest provides a minimal patch applier used only by this
// module's own tests to verify the round-trip property of spec.md §8.
// It is the inverse of the control/diff/extra stream bsdiff.Diff emits
// and is ported in spirit from the retrieved itchio/wharf BSPatch. It is
// not part of the module's public API: the applier is explicitly out of
// scope for the core (spec.md §1).
package patchtest

import (
	"errors"
	"fmt"
)

// Record is one decoded (lenf, gap, jump) control triple plus its diff
// and extra payloads, exactly what a Sink implementation in a test
// would have captured from bsdiff.Diff.
type Record struct {
	Lenf int64
	Gap  int64
	Jump int64
	Diff []byte
	Extra []byte
}

// ErrCorrupt indicates a patch would read or write out of bounds.
var ErrCorrupt = errors.New("patchtest: corrupt patch")

// Apply reconstructs target from source and records, the inverse of
// bsdiff's emission loop: each record copies Lenf bytes from the
// current source cursor plus the diff bytes, then appends Gap literal
// extra bytes, then advances the source cursor by Jump.
func Apply(source []byte, records []Record) ([]byte, error) {
	var target []byte
	oldpos := int64(0)

	for _, rec := range records {
		if rec.Lenf < 0 || rec.Gap < 0 {
			return nil, fmt.Errorf("%w: negative lenf/gap", ErrCorrupt)
		}
		if int64(len(rec.Diff)) != rec.Lenf {
			return nil, fmt.Errorf("%w: diff length %d, want %d", ErrCorrupt, len(rec.Diff), rec.Lenf)
		}
		if int64(len(rec.Extra)) != rec.Gap {
			return nil, fmt.Errorf("%w: extra length %d, want %d", ErrCorrupt, len(rec.Extra), rec.Gap)
		}

		for i := int64(0); i < rec.Lenf; i++ {
			srcIdx := oldpos + i
			if srcIdx < 0 || srcIdx >= int64(len(source)) {
				return nil, fmt.Errorf("%w: source index %d out of range", ErrCorrupt, srcIdx)
			}
			target = append(target, rec.Diff[i]+source[srcIdx])
		}

		target = append(target, rec.Extra...)

		oldpos += rec.Lenf + rec.Jump
	}

	return target, nil
}
