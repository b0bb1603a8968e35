package matching

import (
	"fmt"
	"regexp"
	"strings"
)

// WordErrorKind classifies one position of the word-level diff.
type WordErrorKind int

const (
	// WordMissing means the correct answer has a word the user omitted.
	WordMissing WordErrorKind = iota
	// WordExtra means the user typed a word the correct answer lacks.
	WordExtra
	// WordWrong means the words differ beyond letter case.
	WordWrong
	// WordCase means the words differ only in letter case.
	WordCase
)

// WordError describes one mismatched token position.
type WordError struct {
	Position int
	Kind     WordErrorKind
	Expected string // empty for extra words
	Got      string // empty for missing words
}

// PunctError describes a punctuation character whose count differs.
type PunctError struct {
	Char    string
	Count   int
	Missing bool // true when the user has fewer than the correct answer
}

// Comparison is the structured verdict for one graded answer.
type Comparison struct {
	IsExactMatch          bool
	Words                 []WordError
	Punctuation           []PunctError
	ErrorDetails          string
	CorrectAnswer         string
	HighlightedUserAnswer string
	Similarity            int
}

var tokenRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// punctuationChars are the characters whose frequency is compared between
// the user's answer and the correct sentence.
const punctuationChars = `.,!?:;'"`

// CompareStrings diffs the user's answer against the correct sentence and
// renders a human-readable error summary. The word diff is positional, not
// an LCS alignment; sentences here are short enough that aligned positions
// give useful feedback.
func CompareStrings(user, correct string) Comparison {
	result := Comparison{
		CorrectAnswer: correct,
		Similarity:    Similarity(user, correct),
	}

	if strings.TrimSpace(user) == strings.TrimSpace(correct) {
		result.IsExactMatch = true
		result.HighlightedUserAnswer = strings.TrimSpace(user)
		result.Similarity = 100
		return result
	}

	userTokens := tokenRe.FindAllString(user, -1)
	correctTokens := tokenRe.FindAllString(correct, -1)

	result.Words = diffTokens(userTokens, correctTokens)

	result.Punctuation = comparePunctuation(user, correct)
	result.ErrorDetails = renderErrorDetails(result.Words, result.Punctuation)
	result.HighlightedUserAnswer = highlightTokens(userTokens, result.Words)
	return result
}

// diffTokens walks both token lists position-by-position. A differing
// position is classified by where its tokens occur elsewhere: a correct
// token absent from the user's answer is a missing word, a user token absent
// from the correct answer is an extra word, tokens absent from each other's
// lists are a wrong-word substitution, and tokens equal up to letter case
// are a case difference. Tokens that merely shifted position because of an
// earlier insertion or omission are not re-reported.
func diffTokens(userTokens, correctTokens []string) []WordError {
	var words []WordError
	limit := len(userTokens)
	if len(correctTokens) > limit {
		limit = len(correctTokens)
	}
	for i := 0; i < limit; i++ {
		switch {
		case i >= len(userTokens):
			if !containsFold(userTokens, correctTokens[i]) {
				words = append(words, WordError{Position: i, Kind: WordMissing, Expected: correctTokens[i]})
			}
		case i >= len(correctTokens):
			if !containsFold(correctTokens, userTokens[i]) {
				words = append(words, WordError{Position: i, Kind: WordExtra, Got: userTokens[i]})
			}
		case userTokens[i] == correctTokens[i]:
			// matched
		case strings.EqualFold(userTokens[i], correctTokens[i]):
			words = append(words, WordError{Position: i, Kind: WordCase, Expected: correctTokens[i], Got: userTokens[i]})
		default:
			inUser := containsFold(userTokens, correctTokens[i])
			inCorrect := containsFold(correctTokens, userTokens[i])
			switch {
			case !inUser && inCorrect:
				words = append(words, WordError{Position: i, Kind: WordMissing, Expected: correctTokens[i]})
			case inUser && !inCorrect:
				words = append(words, WordError{Position: i, Kind: WordExtra, Got: userTokens[i]})
			case !inUser && !inCorrect:
				words = append(words, WordError{Position: i, Kind: WordWrong, Expected: correctTokens[i], Got: userTokens[i]})
			default:
				// both tokens occur elsewhere, a pure position shift
			}
		}
	}
	return words
}

// containsFold reports whether tokens holds s, ignoring case.
func containsFold(tokens []string, s string) bool {
	for _, t := range tokens {
		if strings.EqualFold(t, s) {
			return true
		}
	}
	return false
}

// comparePunctuation diffs per-character punctuation counts.
func comparePunctuation(user, correct string) []PunctError {
	var errs []PunctError
	for _, c := range punctuationChars {
		ch := string(c)
		userCount := strings.Count(user, ch)
		correctCount := strings.Count(correct, ch)
		if correctCount > userCount {
			errs = append(errs, PunctError{Char: ch, Count: correctCount - userCount, Missing: true})
		} else if userCount > correctCount {
			errs = append(errs, PunctError{Char: ch, Count: userCount - correctCount, Missing: false})
		}
	}
	return errs
}

func renderErrorDetails(words []WordError, punct []PunctError) string {
	var missing, extra, wrong, caseDiff []string
	for _, w := range words {
		switch w.Kind {
		case WordMissing:
			missing = append(missing, w.Expected)
		case WordExtra:
			extra = append(extra, w.Got)
		case WordWrong:
			wrong = append(wrong, fmt.Sprintf("%q instead of %q", w.Got, w.Expected))
		case WordCase:
			caseDiff = append(caseDiff, fmt.Sprintf("%q should be %q", w.Got, w.Expected))
		}
	}

	var lines []string
	if len(missing) > 0 {
		lines = append(lines, "Missing words: "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		lines = append(lines, "Extra words: "+strings.Join(extra, ", "))
	}
	if len(wrong) > 0 {
		lines = append(lines, "Wrong words: "+strings.Join(wrong, ", "))
	}
	if len(caseDiff) > 0 {
		lines = append(lines, "Case differences: "+strings.Join(caseDiff, ", "))
	}
	for _, p := range punct {
		if p.Missing {
			lines = append(lines, fmt.Sprintf("Missing punctuation: %q x%d", p.Char, p.Count))
		} else {
			lines = append(lines, fmt.Sprintf("Extra punctuation: %q x%d", p.Char, p.Count))
		}
	}
	return strings.Join(lines, "\n")
}

// highlightTokens re-renders the user's tokens with markers: *word* for
// extra or wrong words, _word_ for case-only differences.
func highlightTokens(tokens []string, words []WordError) string {
	marks := make(map[int]WordErrorKind, len(words))
	for _, w := range words {
		if w.Got != "" {
			marks[w.Position] = w.Kind
		}
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		switch kind, ok := marks[i]; {
		case ok && kind == WordCase:
			out[i] = "_" + tok + "_"
		case ok:
			out[i] = "*" + tok + "*"
		default:
			out[i] = tok
		}
	}
	return strings.Join(out, " ")
}
