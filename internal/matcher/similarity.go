package matcher

// Name similarity uses the Ratcliff/Obershelp sequence ratio: find the
// longest matching block, recurse on the pieces to the left and right, and
// score 2*M / (len(a)+len(b)) where M is the total matched length. The fuzzy
// cutoff is tuned against this metric's scale; edit-distance ratios score
// differently at the boundary and must not be substituted.

// SimilarityRatio returns the sequence ratio of a and b in [0, 1].
func SimilarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	m := matchingTotal(ra, rb, 0, len(ra), 0, len(rb))
	return 2.0 * float64(m) / float64(total)
}

func matchingTotal(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, k := longestMatch(a, b, alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	return k +
		matchingTotal(a, b, alo, i, blo, j) +
		matchingTotal(a, b, i+k, ahi, j+k, bhi)
}

// longestMatch finds the leftmost longest block a[i:i+k] == b[j:j+k] inside
// the given bounds.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (int, int, int) {
	b2j := make(map[rune][]int, bhi-blo)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	besti, bestj, bestk := alo, blo, 0
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int, len(b2j[a[i]]))
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestk
}

// ClosestName returns the highest-scoring candidate and its ratio. Ties go
// to the earliest candidate. Empty candidates are skipped; ok is false when
// the target is blank or nothing scored.
func ClosestName(target string, candidates []string) (best string, score float64, ok bool) {
	if target == "" {
		return "", 0, false
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if r := SimilarityRatio(target, c); !ok || r > score {
			best, score, ok = c, r, true
		}
	}
	return best, score, ok
}
