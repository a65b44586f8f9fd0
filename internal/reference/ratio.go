package reference

// Ratio computes a Ratcliff/Obershelp similarity in [0, 1]: twice the total
// length of the matching blocks shared by the two strings, divided by the
// combined length. Symmetric, 1.0 for identical strings, and monotone in
// shared-substring length. Cost is O(len(a)*len(b)) per pair, which is fine
// for the pool sizes involved (bounded by document section counts).
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	matched := matchingTotal(ra, rb)
	return 2.0 * float64(matched) / float64(len(ra)+len(rb))
}

type span struct {
	aLo, aHi int
	bLo, bHi int
}

// matchingTotal sums the lengths of all matching blocks: the longest common
// substring, then recursively the pieces to its left and right.
func matchingTotal(a, b []rune) int {
	total := 0
	queue := []span{{0, len(a), 0, len(b)}}

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		ai, bi, size := longestMatch(a, b, s)
		if size == 0 {
			continue
		}
		total += size

		if s.aLo < ai && s.bLo < bi {
			queue = append(queue, span{s.aLo, ai, s.bLo, bi})
		}
		if ai+size < s.aHi && bi+size < s.bHi {
			queue = append(queue, span{ai + size, s.aHi, bi + size, s.bHi})
		}
	}

	return total
}

// longestMatch finds the longest common run inside the given window.
// Earliest-starting maximal run wins ties, matching the conventional
// block-matching behaviour.
func longestMatch(a, b []rune, s span) (bestA, bestB, bestSize int) {
	bestA, bestB = s.aLo, s.bLo

	// lengths[j] holds the length of the common run ending at (i-1, j-1)
	// from the previous row.
	lengths := make(map[int]int)
	for i := s.aLo; i < s.aHi; i++ {
		next := make(map[int]int)
		for j := s.bLo; j < s.bHi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestA = i - k + 1
				bestB = j - k + 1
				bestSize = k
			}
		}
		lengths = next
	}
	return bestA, bestB, bestSize
}
