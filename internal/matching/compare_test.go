package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareStringsExactMatch(t *testing.T) {
	t.Parallel()

	result := CompareStrings("Hello world.", "Hello world.")
	assert.True(t, result.IsExactMatch)
	assert.Empty(t, result.ErrorDetails)
	assert.Empty(t, result.Words)
	assert.Equal(t, 100, result.Similarity)
	assert.Equal(t, "Hello world.", result.CorrectAnswer)
}

func TestCompareStringsWordDiff(t *testing.T) {
	t.Parallel()

	result := CompareStrings("I go to school", "I went to the school")
	require.False(t, result.IsExactMatch)

	var wrong, missing []WordError
	for _, w := range result.Words {
		switch w.Kind {
		case WordWrong:
			wrong = append(wrong, w)
		case WordMissing:
			missing = append(missing, w)
		}
	}

	require.Len(t, wrong, 1)
	assert.Equal(t, 1, wrong[0].Position)
	assert.Equal(t, "went", wrong[0].Expected)
	assert.Equal(t, "go", wrong[0].Got)

	require.Len(t, missing, 1)
	assert.Equal(t, "the", missing[0].Expected)

	assert.Contains(t, result.ErrorDetails, "Missing words: the")
	assert.Contains(t, result.ErrorDetails, `"go" instead of "went"`)
}

func TestCompareStringsExtraWords(t *testing.T) {
	t.Parallel()

	result := CompareStrings("I really went home", "I went home")
	var extra []WordError
	for _, w := range result.Words {
		if w.Kind == WordExtra {
			extra = append(extra, w)
		}
	}
	require.Len(t, extra, 1)
	assert.Equal(t, "really", extra[0].Got)
	assert.Contains(t, result.ErrorDetails, "Extra words: really")
}

func TestCompareStringsCaseDifference(t *testing.T) {
	t.Parallel()

	result := CompareStrings("hello World", "Hello world")
	require.Len(t, result.Words, 2)
	for _, w := range result.Words {
		assert.Equal(t, WordCase, w.Kind)
	}
	assert.Contains(t, result.ErrorDetails, "Case differences")
	assert.Equal(t, "_hello_ _World_", result.HighlightedUserAnswer)
}

func TestCompareStringsPunctuation(t *testing.T) {
	t.Parallel()

	result := CompareStrings("Hello world", "Hello, world!")
	require.Len(t, result.Punctuation, 2)

	byChar := make(map[string]PunctError)
	for _, p := range result.Punctuation {
		byChar[p.Char] = p
	}
	require.Contains(t, byChar, ",")
	assert.True(t, byChar[","].Missing)
	assert.Equal(t, 1, byChar[","].Count)
	require.Contains(t, byChar, "!")
	assert.True(t, byChar["!"].Missing)

	assert.Contains(t, result.ErrorDetails, `Missing punctuation: "," x1`)
}

func TestCompareStringsExtraPunctuation(t *testing.T) {
	t.Parallel()

	result := CompareStrings("Hello!! world", "Hello world")
	require.Len(t, result.Punctuation, 1)
	assert.Equal(t, "!", result.Punctuation[0].Char)
	assert.Equal(t, 2, result.Punctuation[0].Count)
	assert.False(t, result.Punctuation[0].Missing)
	assert.Contains(t, result.ErrorDetails, `Extra punctuation: "!" x2`)
}

func TestCompareStringsHighlighting(t *testing.T) {
	t.Parallel()

	result := CompareStrings("I go home quickly", "I went home")
	// "go" is a substitution, "quickly" an extra word; both get the same
	// marker, unmarked tokens stay bare.
	assert.Equal(t, "I *go* home *quickly*", result.HighlightedUserAnswer)
}
