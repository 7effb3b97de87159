// cmd/play/main.go
//
// Terminal Arabic Wordle. Fetches the dictionary from a running server and
// plays locally.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/arabic-wordle/internal/tui"
	"github.com/robalobadob/arabic-wordle/internal/words"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		server  string
		logFile string
	)
	cmd := &cobra.Command{
		Use:          "play",
		Short:        "Play Arabic Wordle in the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the screen belongs to the TUI; logs go to a file or nowhere
			log.Logger = zerolog.Nop()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				log.Logger = zerolog.New(f).With().Timestamp().Logger()
			}

			loader := words.NewLoader(server)
			log.Info().Str("url", loader.URL()).Msg("starting")
			_, err := tea.NewProgram(tui.New(loader), tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:5175", "server that serves arabic-words.json")
	cmd.Flags().StringVar(&logFile, "log", "", "write debug logs to this file")
	return cmd
}
