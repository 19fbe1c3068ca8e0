package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var saveNotePath string

var saveCmd = &cobra.Command{
	Use:   "save [text]",
	Short: "Write note content through the atomic save path",
	Long: `Save content into a note using the same temp-file-and-rename sequence
the editor's autosave uses, so the note is never observable in a
half-written state. Content comes from the argument, or from stdin when
no argument is given.

Examples:
  # Save literal text into the last-opened note
  papyru2 save "shopping: eggs, coffee"

  # Pipe a file into a specific note
  papyru2 save --note ~/notes/2026/02/28/draft.txt < draft.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)

	saveCmd.Flags().StringVar(&saveNotePath, "note", "", "Path of the note to save into (default: last opened)")
}

func runSave(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	env, closeEnv, err := newEnv()
	if err != nil {
		return err
	}
	defer closeEnv()

	target := saveNotePath
	if target == "" {
		target = env.prefs.LastOpenedPath
	}
	if target == "" {
		return fmt.Errorf("no note to save into: pass --note or create one first")
	}
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("note not found: %s", target)
	}

	env.engine.FileOpened(target)
	env.engine.BodyTextChanged(text, time.Now())
	env.engine.SaveNow()

	env.prefs.LastOpenedPath = target
	env.savePrefs()

	fmt.Printf("Saved %s (%d bytes)\n", styleValue.Render(target), len(text))
	return nil
}
