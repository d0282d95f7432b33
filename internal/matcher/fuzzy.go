package matcher

// Ratio is the normalized Indel similarity of a and b in [0,100]:
// 100 * 2*LCS / (len(a)+len(b)). Two empty strings score 100.
func Ratio(a, b string) float64 {
	return indelRatio([]rune(a), []rune(b))
}

// PartialRatio scores how well the shorter string appears inside the longer
// one. The shorter string is compared against every window of the longer one
// with the same length, including windows cut short at either edge, and the
// best Ratio is returned. A substring scores 100. Empty input scores 0.
func PartialRatio(a, b string) float64 {
	s, l := []rune(a), []rune(b)
	if len(s) == 0 || len(l) == 0 {
		return 0
	}
	if len(s) > len(l) {
		s, l = l, s
	}

	best := bestWindow(s, l)
	if len(s) == len(l) && best < 100 {
		best = max(best, bestWindow(l, s))
	}
	return best
}

func bestWindow(short, long []rune) float64 {
	best := 0.0
	for start := -(len(short) - 1); start < len(long); start++ {
		lo := max(start, 0)
		hi := min(start+len(short), len(long))
		if score := indelRatio(short, long[lo:hi]); score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

func indelRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 100 * float64(2*lcsLength(a, b)) / float64(total)
}

// lcsLength returns the length of the longest common subsequence.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
