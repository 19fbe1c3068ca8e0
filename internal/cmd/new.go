package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/ddbaker/papyru2/internal/event"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a note under today's dated directory",
	Long: `Create a new note from a title. The title becomes the file stem after
sanitization; an empty or whitespace title falls back to a timestamped
notitle stem. Colliding titles get a numbered suffix, and the actual
stem is reported when it differs from the title.

Examples:
  # Create a note titled "meeting notes"
  papyru2 new "meeting notes"

  # Create an untitled note
  papyru2 new`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	title := ""
	if len(args) > 0 {
		title = args[0]
	}

	env, closeEnv, err := newEnv()
	if err != nil {
		return err
	}
	defer closeEnv()

	var adjustedStem string
	env.engine.Bus().Subscribe("title.adjusted", func(ev event.Event) {
		if ta, ok := ev.(event.TitleAdjustedEvent); ok {
			adjustedStem = ta.Stem
		}
	})

	path, err := env.engine.TitleCommitted(title, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	if path == "" {
		fmt.Println("Create throttled; try again in a moment.")
		return nil
	}

	env.prefs.LastOpenedPath = path
	env.savePrefs()

	fmt.Printf("Created %s\n", styleValue.Render(path))
	if adjustedStem != "" && adjustedStem != strings.TrimSpace(title) {
		fmt.Printf("Stem adjusted to %s\n", styleValue.Render(adjustedStem))
	}
	return nil
}
