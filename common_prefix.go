package bsdiff

import "github.com/binalign/bsdiff/internal/wordcmp"

// commonPrefixLen returns the length of the common prefix of a and b —
// spec.md's matchlen. The comparison itself is delegated to wordcmp,
// which compares a word at a time instead of byte-by-byte and widens
// further when the CPU advertises it (see internal/wordcmp).
func commonPrefixLen(a, b []byte) int {
	return wordcmp.CommonPrefixLen(a, b)
}
