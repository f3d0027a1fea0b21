package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidWord(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"fire", true},
		{"Fire", true},
		{"", false},
		{"two words", false},
		{"hyphen-ated", false},
		{"numb3r", false},
		{"apostrophe's", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidWord(tt.input), "isValidWord(%q)", tt.input)
		})
	}
}

func TestReadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordlist.txt")
	content := "fire\nWater\n\n  earth  \nnot a word\n42\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	words, skipped := readWordList(file, false)

	// Valid lines are trimmed and normalized, invalid ones counted
	assert.Equal(t, []string{"fire", "water", "earth"}, words)
	assert.Equal(t, 2, skipped)
}

func TestImportWordsCommand_ParseFlags(t *testing.T) {
	t.Run("file is required", func(t *testing.T) {
		cmd := NewImportWordsCommand()
		err := cmd.ParseFlags([]string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "-file")
	})

	t.Run("defaults", func(t *testing.T) {
		cmd := NewImportWordsCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-file", "wordlist.txt"}))
		assert.Equal(t, "wordlist.txt", cmd.FilePath)
		assert.Equal(t, 500, cmd.BatchSize)
	})
}

func TestImportWordsCommand_Run(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "wordlist.txt")
	dbPath := filepath.Join(dir, "dictionary.db")
	require.NoError(t, os.WriteFile(listPath, []byte("fire\nwater\nfire\n"), 0o644))

	cmd := NewImportWordsCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-file", listPath, "-db", dbPath}))
	require.NoError(t, cmd.Run())

	// Second run hits only duplicates and still succeeds
	require.NoError(t, cmd.Run())

	t.Run("rejects a list with no usable words", func(t *testing.T) {
		emptyPath := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(emptyPath, []byte("42\nnot a word\n"), 0o644))

		cmd := NewImportWordsCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-file", emptyPath, "-db", dbPath}))
		err := cmd.Run()
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "no valid words"))
	})
}
