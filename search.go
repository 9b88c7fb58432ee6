package bsdiff

import (
	"bytes"

	"github.com/binalign/bsdiff/sarray"
)

// search implements the approximate-longest-match binary descent of
// spec.md §4.2. Given the suffix array sa over source, and a probe
// target[scan:], it returns (pos, len) where pos = sa[k] for some
// k in the inclusive range [st, en] and len is the length of the
// common prefix between source[pos:] and target[scan:].
//
// This deliberately does not disambiguate both subtrees at each split —
// see spec.md §4.2's "Rationale & caveats" — so the returned len is a
// lower bound on the true longest common prefix. The emitter's probe
// loop (emit.go) tolerates the gap.
//
// Expressed iteratively (not recursively, per spec.md §9) to bound
// stack usage at O(log len(sa)) with a constant the compiler knows.
func search(sa sarray.Index, source, target []byte, st, en int) (pos int, length int) {
	for en-st >= 2 {
		x := st + (en-st)/2

		xpos := int(sa[x])
		k := len(source) - xpos
		if len(target) < k {
			k = len(target)
		}

		if bytes.Compare(source[xpos:xpos+k], target[:k]) < 0 {
			st = x
		} else {
			en = x
		}
	}

	stPos := int(sa[st])
	enPos := int(sa[en])
	xlen := commonPrefixLen(source[stPos:], target)
	ylen := commonPrefixLen(source[enPos:], target)

	if xlen > ylen {
		return stPos, xlen
	}
	return enPos, ylen
}
