package lisp

import "github.com/hbollon/go-edlib"

// suggestionThreshold is the minimum Jaro-Winkler similarity a
// candidate must clear before it's offered as a "did you mean"
// suggestion — below this, two names are probably unrelated rather
// than a typo of one another.
const suggestionThreshold = 0.75

// SuggestSymbol returns the interned symbol name most similar to
// missing (already expected to be uppercased by the caller), or "" if
// nothing clears suggestionThreshold. This is the concrete mechanism
// behind a NotBound error's optional Suggestion field (spec.md §7),
// which the original C source always left empty.
func SuggestSymbol(t *SymbolTable, missing string) string {
	return Suggest(missing, t.Names())
}

// Suggest returns the candidate most similar to target by Jaro-Winkler
// distance, or "" if none clears suggestionThreshold. Used for both
// NotBound symbol suggestions and unrecognized-keystring suggestions in
// the input pipeline (keymap package).
func Suggest(target string, candidates []string) string {
	best := ""
	var bestScore float32
	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		score, err := edlib.StringsSimilarity(target, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if bestScore < suggestionThreshold {
		return ""
	}
	return best
}
