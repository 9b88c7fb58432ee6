package bsdiff

import (
	"testing"

	"github.com/binalign/bsdiff/sarray"
)

func buildIndex(t *testing.T, source []byte) sarray.Index {
	t.Helper()
	sa, err := sarray.Build(source, defaultAllocator{})
	if err != nil {
		t.Fatalf("sarray.Build: %v", err)
	}
	return sa
}

func TestSearchExactMatch(t *testing.T) {
	source := []byte("the quick brown fox jumps over the lazy dog")
	sa := buildIndex(t, source)

	pos, length := search(sa, source, []byte("quick brown"), 0, len(sa)-1)
	if length < len("quick brown") {
		t.Fatalf("length = %d, want at least %d", length, len("quick brown"))
	}
	if string(source[pos:pos+length]) != string([]byte("quick brown")[:length]) {
		t.Fatalf("source[%d:%d] = %q, does not match probe", pos, pos+length, source[pos:pos+length])
	}
}

func TestSearchNoMatch(t *testing.T) {
	source := []byte("aaaaaaaaaa")
	sa := buildIndex(t, source)

	_, length := search(sa, source, []byte("zzz"), 0, len(sa)-1)
	if length != 0 {
		t.Fatalf("length = %d, want 0 for a target byte absent from source", length)
	}
}

func TestSearchEmptySource(t *testing.T) {
	source := []byte{}
	sa := buildIndex(t, source)

	pos, length := search(sa, source, []byte("anything"), 0, len(sa)-1)
	if length != 0 || pos != 0 {
		t.Fatalf("search against empty source = (%d, %d), want (0, 0)", pos, length)
	}
}
