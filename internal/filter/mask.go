package filter

import "unicode"

// MaskTokens replaces every case-insensitive, whole-word occurrence of each
// token in text with a run of '*' of the same length. Tokens are processed in
// input order and matched independently; text outside matched spans is never
// touched, so masking already-masked text is a no-op. An empty token list
// returns text unchanged.
//
// Boundaries are checked manually because Go's regexp \b is ASCII-only and
// would never match around Arabic tokens.
func MaskTokens(text string, tokens []string) string {
	if len(tokens) == 0 {
		return text
	}

	runes := []rune(text)
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}

	for _, token := range tokens {
		maskToken(runes, lower, token)
	}

	return string(runes)
}

func maskToken(runes, lower []rune, token string) {
	target := []rune(token)
	for i, r := range target {
		target[i] = unicode.ToLower(r)
	}
	if len(target) == 0 {
		return
	}

	n, m := len(lower), len(target)
	for i := 0; i+m <= n; {
		if !matchesAt(lower, target, i) || !boundaryBefore(lower, i) || !boundaryAfter(lower, i+m) {
			i++
			continue
		}
		for j := i; j < i+m; j++ {
			runes[j] = '*'
			lower[j] = '*'
		}
		i += m
	}
}

func matchesAt(lower, target []rune, i int) bool {
	for j, r := range target {
		if lower[i+j] != r {
			return false
		}
	}
	return true
}

func boundaryBefore(lower []rune, i int) bool {
	return i == 0 || !isWordRune(lower[i-1])
}

func boundaryAfter(lower []rune, i int) bool {
	return i == len(lower) || !isWordRune(lower[i])
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
