// Package wordcmp provides a word-at-a-time common-prefix-length
// comparison, with a wider stride selected at init time on platforms
// where the CPU reports it's worth it. This is the same dispatch shape
// coregex's simd package uses for its memchr kernels: a portable
// default plus a feature-gated override, chosen once via
// golang.org/x/sys/cpu rather than per call.
package wordcmp

import (
	"encoding/binary"
	"math/bits"
)

// CommonPrefixLen returns the length of the common prefix of a and b.
// It is replaced at init time on architectures with a wider comparison
// available; see wordcmp_amd64.go.
var CommonPrefixLen = commonPrefixLenGeneric

func commonPrefixLenGeneric(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	i := 0
	for n-i >= wordSize {
		diff := loadWord(a[i:]) ^ loadWord(b[i:])
		if diff != 0 {
			return i + bits.TrailingZeros64(diff)/8
		}
		i += wordSize
	}

	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

const wordSize = 8

func loadWord(buf []byte) uint64 {
	return binary.LittleEndian.Uint64(buf)
}

// trailingZeroBytes returns the index of the first non-zero byte in a
// little-endian XOR of two words, given that diff != 0.
func trailingZeroBytes(diff uint64) int {
	return bits.TrailingZeros64(diff) / 8
}
