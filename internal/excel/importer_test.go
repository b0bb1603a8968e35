package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/pkg/models"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportVocabulariesFromCSV(t *testing.T) {
	require.NoError(t, database.Open("sqlite3", ":memory:"))
	t.Cleanup(func() { _ = database.Close() })

	csv := "word,category,vietnamese,sentences,grammar\n" +
		"arrive,GENERAL,tàu đến lúc chín giờ,The train arrives at nine||The train arrived at nine,simple present\n" +
		"arrive,GENERAL,anh ấy đến muộn,He arrived late,past simple\n" +
		"invoice,TOEIC,gửi hóa đơn,Please send the invoice,\n" +
		"shout,BOGUS,đừng hét,Do not shout,\n" +
		",GENERAL,missing word,Never imported,\n" +
		"empty,GENERAL,no sentences,,\n"

	cfg := DefaultImportConfig()
	cfg.FilePath = writeCSV(t, csv)

	result, err := ImportVocabularies(cfg)
	require.NoError(t, err)

	assert.Equal(t, 6, result.TotalProcessed, "the header row is skipped")
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 1, result.Updated, "the repeated headword gains an example instead of a duplicate")
	assert.Equal(t, 2, result.Skipped)
	assert.Empty(t, result.Errors)

	repo := database.NewVocabularyRepository()

	arrive, err := repo.FindByWord("arrive", models.CategoryGeneral)
	require.NoError(t, err)
	require.NotNil(t, arrive)
	require.Len(t, arrive.Examples, 2)
	assert.Equal(t, []string{"The train arrives at nine", "The train arrived at nine"}, arrive.Examples[0].Sentences())
	assert.Equal(t, "simple present", arrive.Examples[0].Grammar)
	assert.Equal(t, "anh ấy đến muộn", arrive.Examples[1].Vietnamese)

	invoice, err := repo.FindByWord("invoice", models.CategoryToeic)
	require.NoError(t, err)
	require.NotNil(t, invoice)

	// Unknown categories fall back to GENERAL.
	shout, err := repo.FindByWord("shout", models.CategoryGeneral)
	require.NoError(t, err)
	require.NotNil(t, shout)
}

func TestColumnIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		column string
		want   int
	}{
		{"A", 0},
		{"b", 1},
		{" E ", 4},
		{"Z", 25},
		{"AA", 26},
		{"", -1},
		{"4", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, columnIndex(tt.column), "column %q", tt.column)
	}
}

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"one", "two"}, splitSentences(" one || two "))
	assert.Empty(t, splitSentences("  ||  "))
	assert.Equal(t, []string{"single"}, splitSentences("single"))
}
