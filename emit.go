package bsdiff

import "github.com/binalign/bsdiff/sarray"

// runEmit is the Match Extender & Emitter (spec.md §4.3): it walks scan
// across target, using search (the Match Searcher) to find candidate
// copies, decides when a candidate is worth emitting, extends it
// forward/backward with the 2s-i objective, resolves the overlap with
// the previous emission, and writes one control/diff/extra record per
// accepted match through sink. scratch must have length len(target)+1
// and is reused across emissions for both the diff and extra runs.
func runEmit(source []byte, sa sarray.Index, target []byte, scratch []byte, sink Sink, maxWriteSize int32) error {
	oldsize := len(source)
	newsize := len(target)

	var scan, pos, length int
	var lastscan, lastpos, lastoffset int

	for scan < newsize {
		oldscore := 0
		scan += length

		scsc := scan
		for ; scan < newsize; scan++ {
			pos, length = search(sa, source, target[scan:], 0, len(sa)-1)

			for ; scsc < scan+length; scsc++ {
				if scsc+lastoffset < oldsize && source[scsc+lastoffset] == target[scsc] {
					oldscore++
				}
			}

			if (length == oldscore && length != 0) || length > oldscore+overheadBytes {
				break
			}

			if scan+lastoffset < oldsize && source[scan+lastoffset] == target[scan] {
				oldscore--
			}
		}

		if length != oldscore || scan == newsize {
			lenf := extendForward(source, target, lastscan, lastpos, scan, oldsize)

			lenb := 0
			if scan < newsize {
				lenb = extendBackward(source, target, lastscan, scan, pos)
			} else {
				// The tail record has no following copy: pos still holds an
				// earlier search result, so pin it to where this copy ends
				// and the record's jump is 0.
				pos = lastpos + lenf
			}

			if lastscan+lenf > scan-lenb {
				lenf, lenb = resolveOverlap(source, target, lastscan, lastpos, scan, pos, lenf, lenb)
			}

			if err := emitRecord(source, target, scratch, sink, maxWriteSize, lastscan, lastpos, scan, pos, lenf, lenb); err != nil {
				return err
			}

			lastscan = scan - lenb
			lastpos = pos - lenb
			lastoffset = pos - scan
		}
	}

	return nil
}

// extendForward widens the previous copy forwards from lastscan to fill
// the gap left after the previous emission, maximizing the running
// objective 2s - i (spec.md §4.3.2). Earlier i wins ties: an equal score
// later does not update, only a strictly greater score replaces it.
func extendForward(source, target []byte, lastscan, lastpos, scan, oldsize int) int {
	s, bestScore, lenf := 0, 0, 0

	for i := 0; lastscan+i < scan && lastpos+i < oldsize; {
		if source[lastpos+i] == target[lastscan+i] {
			s++
		}
		i++
		if s*2-i > bestScore {
			bestScore = s*2 - i
			lenf = i
		}
	}

	return lenf
}

// extendBackward widens the new copy backwards from its own start to
// fill the gap before it, with the same 2s - i objective.
func extendBackward(source, target []byte, lastscan, scan, pos int) int {
	s, bestScore, lenb := 0, 0, 0

	for i := 1; scan >= lastscan+i && pos >= i; i++ {
		if source[pos-i] == target[scan-i] {
			s++
		}
		if s*2-i > bestScore {
			bestScore = s*2 - i
			lenb = i
		}
	}

	return lenb
}

// resolveOverlap splits the bytes the forward and backward extensions
// both claim, choosing the split that maximizes matches-in-forward
// minus matches-in-backward over the contested region (spec.md §4.3.3).
// Earlier splits win ties, since only a strictly greater running sum
// updates the chosen split point.
func resolveOverlap(source, target []byte, lastscan, lastpos, scan, pos, lenf, lenb int) (int, int) {
	overlap := (lastscan + lenf) - (scan - lenb)

	s, best, lens := 0, 0, 0
	for i := 0; i < overlap; i++ {
		if target[lastscan+lenf-overlap+i] == source[lastpos+lenf-overlap+i] {
			s++
		}
		if target[scan-lenb+i] == source[pos-lenb+i] {
			s--
		}
		if s > best {
			best = s
			lens = i + 1
		}
	}

	return lenf + lens - overlap, lenb - lens
}

// emitRecord writes the control triple, diff run, and extra run for one
// accepted match (spec.md §4.3.4), in that order.
func emitRecord(source, target, scratch []byte, sink Sink, maxWriteSize int32, lastscan, lastpos, scan, pos, lenf, lenb int) error {
	var ctrl [24]byte
	gap := (scan - lenb) - (lastscan + lenf)
	jump := (pos - lenb) - (lastpos + lenf)

	PutOfft(int64(lenf), ctrl[0:8])
	PutOfft(int64(gap), ctrl[8:16])
	PutOfft(int64(jump), ctrl[16:24])

	if err := writeChunked(sink, ctrl[:], Control, maxWriteSize); err != nil {
		return err
	}

	for i := 0; i < lenf; i++ {
		scratch[i] = target[lastscan+i] - source[lastpos+i]
	}
	if err := writeChunked(sink, scratch[:lenf], Diff, maxWriteSize); err != nil {
		return err
	}

	for i := 0; i < gap; i++ {
		scratch[i] = target[lastscan+lenf+i]
	}
	return writeChunked(sink, scratch[:gap], Extra, maxWriteSize)
}
