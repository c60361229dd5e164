package match

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the minimum score at which two names are treated as
// the same entity.
const DefaultThreshold = 80

// Normalize canonicalizes a name for exact comparison: NFKC normalization,
// Unicode case folding, trimming, and collapsing internal whitespace runs to
// a single space. Punctuation is preserved.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Score returns the similarity of a and b in [0, 100].
// Identical names after [Normalize] score 100; names without any letter or
// digit score 0 against everything else.
func Score(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	if na == nb && na != "" {
		return 100
	}
	pa, pb := strings.Join(tokens(na), " "), strings.Join(tokens(nb), " ")
	if pa == "" || pb == "" {
		return 0
	}
	if pa == pb {
		return 100
	}
	return int(math.Round(weighted(pa, pb)))
}

// weighted combines the individual ratios. Full-string comparisons are used
// when lengths are close; otherwise the best matching window of the longer
// string counts, scaled down as the length gap grows.
func weighted(a, b string) float64 {
	const tokenScale = 0.95

	la, lb := runeLen(a), runeLen(b)
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))

	best := ratio(a, b)
	if lenRatio < 1.5 {
		best = max(best,
			ratio(sortedTokens(a), sortedTokens(b))*tokenScale,
			tokenSetRatio(a, b, ratio)*tokenScale,
		)
		return best
	}

	partialScale := 0.9
	if lenRatio > 8 {
		partialScale = 0.6
	}
	return max(best,
		partialRatio(a, b)*partialScale,
		partialRatio(sortedTokens(a), sortedTokens(b))*partialScale*tokenScale,
		tokenSetRatio(a, b, partialRatio)*partialScale*tokenScale,
	)
}

// ratio is the Levenshtein distance normalized by the longer length.
func ratio(a, b string) float64 {
	la, lb := runeLen(a), runeLen(b)
	if la == 0 || lb == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(d)/float64(max(la, lb)))
}

// partialRatio slides the shorter string over the longer one and returns the
// best window ratio.
func partialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	s := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		r := ratio(s, string(long[i:i+len(short)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// tokenSetRatio compares the shared tokens against each side's full token
// set, so extra words on one side cost less than reordered or misspelled ones.
func tokenSetRatio(a, b string, scorer func(string, string) float64) float64 {
	ta, tb := uniqueTokens(a), uniqueTokens(b)

	var inter, onlyA, onlyB []string
	for _, t := range ta {
		if slices.Contains(tb, t) {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tb {
		if !slices.Contains(ta, t) {
			onlyB = append(onlyB, t)
		}
	}

	t0 := strings.Join(inter, " ")
	t1 := strings.TrimSpace(t0 + " " + strings.Join(onlyA, " "))
	t2 := strings.TrimSpace(t0 + " " + strings.Join(onlyB, " "))

	return max(scorer(t0, t1), scorer(t0, t2), scorer(t1, t2))
}

// tokens splits s on anything that is not a letter or a digit.
func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func sortedTokens(s string) string {
	t := tokens(s)
	slices.Sort(t)
	return strings.Join(t, " ")
}

func uniqueTokens(s string) []string {
	t := tokens(s)
	slices.Sort(t)
	return slices.Compact(t)
}

func runeLen(s string) int { return len([]rune(s)) }
