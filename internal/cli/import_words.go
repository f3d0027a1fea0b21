// Package cli implements the command-line subcommands that run next to the
// HTTP server.
package cli

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mrlokans/dictionary/internal/config"
	"github.com/mrlokans/dictionary/internal/database"
	wordsdb "github.com/mrlokans/dictionary/internal/database/words"
)

// ImportWordsCommand seeds the word index from a word-list file, one word per
// line. Lines that are not a single alphabetic token are skipped; words
// already in the index are left untouched.
type ImportWordsCommand struct {
	FilePath     string
	DatabasePath string
	BatchSize    int
	Verbose      bool
}

func NewImportWordsCommand() *ImportWordsCommand {
	return &ImportWordsCommand{}
}

func (cmd *ImportWordsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-words", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the word-list file, one word per line (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.BatchSize, "batch-size", 500, "Number of words inserted per batch")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log skipped lines")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-words -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Seed the word index from a word-list file.\n\n")
		fmt.Fprintf(os.Stderr, "Each line must hold exactly one word made of letters. Other lines are\n")
		fmt.Fprintf(os.Stderr, "skipped; repeat runs are safe because existing words are ignored.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s import-words -file wordlist.txt\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}
	return nil
}

func (cmd *ImportWordsCommand) Run() error {
	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open word list: %w", err)
	}
	defer file.Close()

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	words, skipped := readWordList(file, cmd.Verbose)
	if len(words) == 0 {
		return fmt.Errorf("no valid words found in %s", cmd.FilePath)
	}

	inserted, err := wordsdb.NewRepository(db.DB).BulkInsert(words, cmd.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to insert words: %w", err)
	}

	log.Printf("Imported %d new words (%d read, %d skipped, %d already present)",
		inserted, len(words)+skipped, skipped, int64(len(words))-inserted)
	return nil
}

// readWordList collects the valid words from the file and counts the
// rejected lines.
func readWordList(file *os.File, verbose bool) ([]string, int) {
	var words []string
	skipped := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !isValidWord(line) {
			skipped++
			if verbose {
				log.Printf("Skipping invalid line: %q", line)
			}
			continue
		}
		words = append(words, wordsdb.Normalize(line))
	}
	return words, skipped
}

// isValidWord accepts a single token of ASCII letters, the shape of the
// dictionary's word-list files.
func isValidWord(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
