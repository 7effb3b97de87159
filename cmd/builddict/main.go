// cmd/builddict/main.go
//
// Offline dictionary builder.
// Reads the word-frequency and verb-frequency tables, keeps the normalized
// 4-letter Arabic words and writes them as a JSON array. On any error the
// output file is left untouched and the process exits non-zero.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/arabic-wordle/internal/words"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("build failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		wordfreq string
		verbs    string
		out      string
		sorted   bool
	)
	cmd := &cobra.Command{
		Use:           "builddict",
		Short:         "Build the 4-letter Arabic word list from frequency tables",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := words.BuildFiles(wordfreq, verbs)
			if err != nil {
				return err
			}
			if sorted {
				words.SortWords(list)
			}
			log.Info().Msgf("found %d 4-letter words", len(list))

			if err := writeAtomic(out, list); err != nil {
				return err
			}
			log.Info().Str("out", out).Msg("dictionary saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&wordfreq, "wordfreq", "public/wordfreq.csv", "word frequency table (tab-separated)")
	cmd.Flags().StringVar(&verbs, "verbs", "public/freq_verbs.csv", "verb frequency table (tab-separated)")
	cmd.Flags().StringVar(&out, "out", "public/arabic-words.json", "output JSON file")
	cmd.Flags().BoolVar(&sorted, "sort", false, "sort words for reproducible output")
	return cmd
}

// writeAtomic writes list to a temporary file next to path and renames it
// into place.
func writeAtomic(path string, list []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".arabic-words-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := words.WriteJSON(tmp, list); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
