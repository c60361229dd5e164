// Package match scores how likely two free-text names refer to the same thing.
//
// # Overview
//
// Names typed by a user drift: "Pizza" and "pizza", "Jon Smith" and
// "Smith, Jon", "bok choy" and "bokchoy". [Score] maps a pair of names to
// an integer in [0, 100] that is:
//
//   - Case-insensitive and Unicode-normalized (see [Normalize])
//   - Insensitive to token order and punctuation ("Smith, Jon" = "Jon Smith")
//   - Tolerant of partial substring overlap, discounted by length mismatch
//
// The score is the best of several edit-distance ratios, in the spirit of a
// weighted ratio: a plain normalized Levenshtein ratio, a token-sort ratio,
// a token-set ratio, and partial (best-window) variants when the two names
// differ a lot in length.
//
// # Matcher
//
// A [Matcher] pairs the scorer with an acceptance threshold
// ([DefaultThreshold] = 80). [Matcher.Best] picks the highest scoring
// candidate, preferring the earliest candidate on ties so that results are
// reproducible for a fixed candidate order.
//
//	m := match.New(match.DefaultThreshold)
//	idx, score, ok := m.Best("Smith, Jon", []string{"Jane Doe", "Jon Smith"})
//	if ok && m.Accept(score) {
//	    // reuse candidate idx
//	}
//
// The package holds no state; a Matcher is safe for concurrent use.
package match
