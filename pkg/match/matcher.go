package match

import "slices"

// Matcher scores a name against a candidate list and applies an acceptance
// threshold.
type Matcher struct {
	threshold int
}

// Candidate is a scored entry returned by [Matcher.Rank].
type Candidate struct {
	Index int    // Position in the candidate slice passed to Rank
	Name  string // Candidate as given
	Score int    // Similarity in [0, 100]
}

// New creates a Matcher with the given threshold, clamped to [0, 100].
func New(threshold int) *Matcher {
	return &Matcher{threshold: min(max(threshold, 0), 100)}
}

// Threshold returns the acceptance threshold.
func (m *Matcher) Threshold() int { return m.threshold }

// Accept reports whether score reaches the threshold.
func (m *Matcher) Accept(score int) bool { return score >= m.threshold }

// Best returns the index and score of the highest scoring candidate.
// On ties the earliest candidate wins. ok is false when candidates is empty.
func (m *Matcher) Best(name string, candidates []string) (idx, score int, ok bool) {
	idx = -1
	score = -1
	for i, c := range candidates {
		s := Score(name, c)
		if s > score {
			idx, score = i, s
			if s == 100 {
				break
			}
		}
	}
	if idx < 0 {
		return -1, 0, false
	}
	return idx, score, true
}

// Rank scores every candidate and returns the top limit entries ordered by
// descending score, earliest first on ties. A limit <= 0 returns all.
func (m *Matcher) Rank(name string, candidates []string) []Candidate {
	return m.RankN(name, candidates, 0)
}

// RankN is [Matcher.Rank] with a result limit.
func (m *Matcher) RankN(name string, candidates []string, limit int) []Candidate {
	ranked := make([]Candidate, len(candidates))
	for i, c := range candidates {
		ranked[i] = Candidate{Index: i, Name: c, Score: Score(name, c)}
	}
	slices.SortStableFunc(ranked, func(a, b Candidate) int { return b.Score - a.Score })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
