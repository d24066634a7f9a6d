package tetris

// Score buckets, indexed by lines cleared in a single placement.
const (
	BucketSingle = iota
	BucketDouble
	BucketTriple
	BucketTetris
	bucketCount
)

// Score counts placements by how many lines each one cleared.
// Clears of four or more lines share the last bucket.
type Score [bucketCount]int

// BucketFor returns the bucket index for a clear of n lines, or -1 when no
// line was cleared.
func BucketFor(lines int) int {
	if lines <= 0 {
		return -1
	}
	return min(lines, bucketCount) - 1
}

// Record bumps the bucket for a placement that cleared n lines.
// It returns the bucket touched, or -1.
func (s *Score) Record(lines int) int {
	b := BucketFor(lines)
	if b >= 0 {
		s[b]++
	}
	return b
}

// Singles returns the number of one-line clears.
func (s Score) Singles() int { return s[BucketSingle] }

// Doubles returns the number of two-line clears.
func (s Score) Doubles() int { return s[BucketDouble] }

// Triples returns the number of three-line clears.
func (s Score) Triples() int { return s[BucketTriple] }

// Tetrises returns the number of clears of four or more lines.
func (s Score) Tetrises() int { return s[BucketTetris] }

// Lines returns the minimum number of lines the counters account for.
func (s Score) Lines() int {
	return s[BucketSingle] + 2*s[BucketDouble] + 3*s[BucketTriple] + 4*s[BucketTetris]
}
