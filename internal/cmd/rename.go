package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var renameNotePath string

var renameCmd = &cobra.Command{
	Use:   "rename <title>",
	Short: "Rename a note to match a new title",
	Long: `Rename a note in place: the file keeps its directory and extension but
takes a new stem derived from the title. Without --note the last note
touched by new, open, or save is renamed.

The new stem goes through the same sanitization and collision numbering
as note creation.`,
	Args: cobra.ExactArgs(1),
	RunE: runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)

	renameCmd.Flags().StringVar(&renameNotePath, "note", "", "Path of the note to rename (default: last opened)")
}

func runRename(cmd *cobra.Command, args []string) error {
	env, closeEnv, err := newEnv()
	if err != nil {
		return err
	}
	defer closeEnv()

	target := renameNotePath
	if target == "" {
		target = env.prefs.LastOpenedPath
	}
	if target == "" {
		return fmt.Errorf("no note to rename: pass --note or create one first")
	}

	env.engine.FileOpened(target)
	newPath, err := env.engine.TitleCommitted(args[0], time.Now())
	if err != nil {
		return fmt.Errorf("failed to rename note: %w", err)
	}
	if newPath == "" {
		fmt.Println("Nothing to rename.")
		return nil
	}

	env.prefs.LastOpenedPath = newPath
	env.savePrefs()

	fmt.Printf("Renamed to %s\n", styleValue.Render(newPath))
	return nil
}
