package substitute

import "sort"

// Stats summarizes a Lines run.
type Stats struct {
	Lines       int
	Substituted int
	Deleted     int
	Unchanged   int
	// PerToken counts matches by input token.
	PerToken map[string]int
}

func newStats() Stats {
	return Stats{PerToken: map[string]int{}}
}

func (s *Stats) record(m Match) {
	s.Lines++
	switch {
	case !m.Matched:
		s.Unchanged++
		return
	case m.Deleted:
		s.Deleted++
	default:
		s.Substituted++
	}
	s.PerToken[m.Token]++
}

// TokenCount pairs a token with how often it matched.
type TokenCount struct {
	Token string
	Count int
}

// Top returns the n most frequently matched tokens, most frequent first.
// Ties are ordered by token. n <= 0 returns all of them.
func (s Stats) Top(n int) []TokenCount {
	counts := make([]TokenCount, 0, len(s.PerToken))
	for tok, c := range s.PerToken {
		counts = append(counts, TokenCount{Token: tok, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Token < counts[j].Token
	})
	if n > 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}
