package bsdiff

import "testing"

func TestExtendForwardPrefersLongerMatch(t *testing.T) {
	source := []byte("abcdeXXXXX")
	target := []byte("abcdeYYYYY")

	lenf := extendForward(source, target, 0, 0, 5, len(source))
	if lenf != 5 {
		t.Fatalf("extendForward = %d, want 5 (the matching abcde prefix)", lenf)
	}
}

func TestExtendForwardStopsAtSourceBound(t *testing.T) {
	source := []byte("abc")
	target := []byte("abcdef")

	lenf := extendForward(source, target, 0, 0, 6, len(source))
	if lenf != 3 {
		t.Fatalf("extendForward = %d, want 3 (bounded by len(source))", lenf)
	}
}

func TestExtendBackwardPrefersLongerMatch(t *testing.T) {
	source := []byte("XXXXXfghij")
	target := []byte("YYYYYfghij")

	lenb := extendBackward(source, target, 0, 10, 10)
	if lenb != 5 {
		t.Fatalf("extendBackward = %d, want 5 (the matching fghij suffix)", lenb)
	}
}

func TestResolveOverlapSplitsAtBestScore(t *testing.T) {
	// lastscan=0, lenf=6 so forward claims target[0:6]; scan=4, pos=4,
	// lenb=4 so backward claims target[0:4] sourced from source[0:4]:
	// the two claims overlap entirely over target[0:4].
	source := []byte("AABBCCDD")
	target := []byte("AABBCCDD")

	lenf, lenb := resolveOverlap(source, target, 0, 0, 4, 4, 6, 4)
	if lenf+lenb > 8 {
		t.Fatalf("resolveOverlap returned overlapping lenf=%d lenb=%d summing past the 8-byte window", lenf, lenb)
	}
	if lenf < 0 || lenb < 0 {
		t.Fatalf("resolveOverlap returned negative length: lenf=%d lenb=%d", lenf, lenb)
	}
}

func TestEmitRecordWritesControlDiffExtraInOrder(t *testing.T) {
	source := []byte("abcdef")
	target := []byte("abcdXYghij")
	scratch := make([]byte, len(target)+1)
	sink := &fakeSink{failAt: -1}

	// lastscan=0 lastpos=0 scan=6 pos=4 lenf=4 lenb=0: emits a 4-byte
	// copy from source[0:4], a 2-byte gap "XY", matching emit.go's
	// record shape.
	if err := emitRecord(source, target, scratch, sink, 1<<20, 0, 0, 6, 4, 4, 0); err != nil {
		t.Fatalf("emitRecord: %v", err)
	}

	if len(sink.kinds) != 3 {
		t.Fatalf("expected 3 writes (control, diff, extra), got %d", len(sink.kinds))
	}
	if sink.kinds[0] != Control || sink.kinds[1] != Diff || sink.kinds[2] != Extra {
		t.Fatalf("write order = %v, want [Control Diff Extra]", sink.kinds)
	}

	lenf := GetOfft(sink.writes[0][0:8])
	gap := GetOfft(sink.writes[0][8:16])
	if lenf != 4 {
		t.Fatalf("control lenf = %d, want 4", lenf)
	}
	if gap != 2 {
		t.Fatalf("control gap = %d, want 2", gap)
	}
	if string(sink.writes[2]) != "XY" {
		t.Fatalf("extra run = %q, want %q", sink.writes[2], "XY")
	}
}
