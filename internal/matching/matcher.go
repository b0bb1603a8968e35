package matching

import (
	"math"
	"regexp"
	"strings"

	"github.com/example/vocabbot/pkg/models"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	quoteFixer   = strings.NewReplacer(
		"‘", "'", // left single quote
		"’", "'", // right single quote
		"“", `"`, // left double quote
		"”", `"`, // right double quote
	)
)

// Normalize prepares a string for comparison: trims it, collapses internal
// whitespace runs to single spaces and straightens typographic quotes.
func Normalize(s string) string {
	s = quoteFixer.Replace(s)
	s = strings.TrimSpace(s)
	return whitespaceRe.ReplaceAllString(s, " ")
}

// Equivalent reports whether two strings say the same thing, treating a
// contracted phrase and its expansion as interchangeable. The contraction
// comparisons ignore letter case and terminal punctuation, so "it's raining"
// matches "It is raining.".
func Equivalent(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}
	if equalFoldLoose(ExpandContractions(na), ExpandContractions(nb)) {
		return true
	}
	return equalFoldLoose(ContractPhrases(na), ContractPhrases(nb))
}

// equalFoldLoose compares ignoring case and trailing sentence punctuation.
func equalFoldLoose(a, b string) bool {
	trim := func(s string) string {
		return strings.TrimRight(s, ".!?,;: ")
	}
	return strings.EqualFold(trim(a), trim(b))
}

// MatchesAnySentence reports whether the answer satisfies any of the
// example's acceptable sentences.
func MatchesAnySentence(answer string, example models.Example) bool {
	for _, s := range example.Sentences() {
		if Equivalent(answer, s) {
			return true
		}
	}
	return false
}

// Similarity scores how close two strings are as an integer percentage,
// using Levenshtein edit distance over the longer string's length.
func Similarity(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein(ra, rb)
	return int(math.Round(float64(maxLen-dist) / float64(maxLen) * 100))
}

// levenshtein computes classic edit distance with a single-row DP.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := row[0] // row[i-1][j-1]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			insert := row[j-1] + 1
			remove := row[j] + 1
			substitute := prev
			if a[i-1] != b[j-1] {
				substitute++
			}
			best := insert
			if remove < best {
				best = remove
			}
			if substitute < best {
				best = substitute
			}
			prev = row[j]
			row[j] = best
		}
	}
	return row[len(b)]
}

// BestMatch picks the sentence the answer most plausibly targets. An exact
// or contraction-equivalent sentence wins outright; otherwise the sentence
// with the highest similarity, considering both raw and fully expanded
// forms, is chosen.
func BestMatch(answer string, sentences []string) (string, int) {
	if len(sentences) == 0 {
		return "", 0
	}
	for _, s := range sentences {
		if Equivalent(answer, s) {
			return s, 100
		}
	}
	expandedAnswer := ExpandContractions(Normalize(answer))
	best := sentences[0]
	bestScore := -1
	for _, s := range sentences {
		score := Similarity(Normalize(answer), Normalize(s))
		if expanded := Similarity(expandedAnswer, ExpandContractions(Normalize(s))); expanded > score {
			score = expanded
		}
		if score > bestScore {
			best = s
			bestScore = score
		}
	}
	return best, bestScore
}
