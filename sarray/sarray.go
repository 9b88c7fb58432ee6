// Package sarray builds the suffix array over a source buffer: the
// Suffix Array Builder of spec.md §4.1.
package sarray

// Index is a suffix array: Index[i] is the start offset, in the source
// buffer, of the suffix with lexicographic rank i. It has one more
// entry than the source buffer is long (spec.md §3), and is read-only
// once built.
type Index []int64

// Allocator is the subset of the core Allocator the builder needs:
// arrays of signed offsets for the suffix array itself and for
// qsufsort's rank array.
type Allocator interface {
	IndexSlice(n int) ([]int64, error)
}

// Build computes the suffix array of data with qsufsort (Larsson &
// Sadakane, "Faster Suffix Sorting", 1999) — the same O(n log n)
// prefix-doubling algorithm the original bsdiff used before its
// divsufsort rewrite. spec.md §4.1 accepts any correct O(n log n)
// construction; qsufsort is the one reproducible here without a cgo
// dependency on divsufsort itself.
//
// alloc provides both len(data)+1 arrays: the suffix array, which is
// returned as the Index, and the scratch rank array. A failing alloc
// surfaces as an error rather than a panic, matching the "index build
// failed" taxonomy of spec.md §7.
func Build(data []byte, alloc Allocator) (Index, error) {
	n := int64(len(data))

	sa, err := alloc.IndexSlice(int(n) + 1)
	if err != nil {
		return nil, err
	}
	rank, err := alloc.IndexSlice(int(n) + 1)
	if err != nil {
		return nil, err
	}

	qsufsort(sa, rank, data)
	return Index(sa), nil
}

// qsufsort fills sa with the suffix array of buf, using rank as
// scratch. Both slices must have length len(buf)+1.
func qsufsort(sa, rank []int64, buf []byte) {
	n := int64(len(buf))

	var buckets [256]int64
	for _, c := range buf {
		buckets[c]++
	}
	for i := int64(1); i < 256; i++ {
		buckets[i] += buckets[i-1]
	}
	for i := int64(255); i > 0; i-- {
		buckets[i] = buckets[i-1]
	}
	buckets[0] = 0

	for i, c := range buf {
		buckets[c]++
		sa[buckets[c]] = int64(i)
	}
	sa[0] = n

	for i, c := range buf {
		rank[i] = buckets[c]
	}
	rank[n] = 0

	for i := int64(1); i < 256; i++ {
		if buckets[i] == buckets[i-1]+1 {
			sa[buckets[i]] = -1
		}
	}
	sa[0] = -1

	for h := int64(1); sa[0] != -(n + 1); h += h {
		var length int64
		i := int64(0)
		for i < n+1 {
			if sa[i] < 0 {
				length -= sa[i]
				i -= sa[i]
			} else {
				if length != 0 {
					sa[i-length] = -length
				}
				length = rank[sa[i]] + 1 - i
				split(sa, rank, i, length, h)
				i += length
				length = 0
			}
		}
		if length != 0 {
			sa[i-length] = -length
		}
	}

	for i := int64(0); i < n+1; i++ {
		sa[rank[i]] = i
	}
}

// split is qsufsort's ternary-split quicksort step: it partitions
// sa[start:start+length) by rank[sa[k]+h] and recurses on the two
// outer partitions, exactly as Larsson & Sadakane describe.
func split(sa, rank []int64, start, length, h int64) {
	if length < 16 {
		for k := start; k < start+length; {
			j := int64(1)
			x := rank[sa[k]+h]
			for i := int64(1); k+i < start+length; i++ {
				if rank[sa[k+i]+h] < x {
					x = rank[sa[k+i]+h]
					j = 0
				}
				if rank[sa[k+i]+h] == x {
					sa[k+i], sa[k+j] = sa[k+j], sa[k+i]
					j++
				}
			}
			for i := int64(0); i < j; i++ {
				rank[sa[k+i]] = k + j - 1
			}
			if j == 1 {
				sa[k] = -1
			}
			k += j
		}
		return
	}

	x := rank[sa[start+length/2]+h]
	var jj, kk int64
	for i := start; i < start+length; i++ {
		if rank[sa[i]+h] < x {
			jj++
		} else if rank[sa[i]+h] == x {
			kk++
		}
	}
	jj += start
	kk += jj

	i, j, k := start, int64(0), int64(0)
	for i < jj {
		switch {
		case rank[sa[i]+h] < x:
			i++
		case rank[sa[i]+h] == x:
			sa[i], sa[jj+j] = sa[jj+j], sa[i]
			j++
		default:
			sa[i], sa[kk+k] = sa[kk+k], sa[i]
			k++
		}
	}

	for jj+j < kk {
		if rank[sa[jj+j]+h] == x {
			j++
		} else {
			sa[jj+j], sa[kk+k] = sa[kk+k], sa[jj+j]
			k++
		}
	}

	if jj > start {
		split(sa, rank, start, jj-start, h)
	}

	for i := int64(0); i < kk-jj; i++ {
		rank[sa[jj+i]] = kk - 1
	}
	if jj == kk-1 {
		sa[jj] = -1
	}

	if start+length > kk {
		split(sa, rank, kk, start+length-kk, h)
	}
}
