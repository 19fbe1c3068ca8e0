package cmd

import (
	"fmt"
	"strings"

	"github.com/ddbaker/papyru2/internal/catalog"
	"github.com/spf13/cobra"
)

var listFlat bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notes in the document tree",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listFlat, "flat", false, "Print full note paths instead of a tree")
}

func runList(cmd *cobra.Command, args []string) error {
	env, closeEnv, err := newEnv()
	if err != nil {
		return err
	}
	defer closeEnv()

	cat := env.engine.Catalog()

	if listFlat {
		notes, err := cat.Notes()
		if err != nil {
			return fmt.Errorf("failed to scan notes: %w", err)
		}
		if len(notes) == 0 {
			fmt.Println(styleMuted.Render("No notes yet."))
			return nil
		}
		for _, note := range notes {
			fmt.Println(styleNote.Render(note))
		}
		return nil
	}

	entries, err := cat.List()
	if err != nil {
		return fmt.Errorf("failed to scan document tree: %w", err)
	}

	fmt.Println(styleHeader.Render(cat.Root()))
	if len(entries) == 0 {
		fmt.Println(styleMuted.Render("  (empty)"))
		return nil
	}
	printTree(entries, 1)
	return nil
}

func printTree(entries []catalog.Entry, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, entry := range entries {
		if entry.IsDir {
			fmt.Println(indent + styleDir.Render(entry.Name+"/"))
			printTree(entry.Children, depth+1)
		} else {
			fmt.Println(indent + styleNote.Render(entry.Name))
		}
	}
}
