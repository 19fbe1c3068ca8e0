package cmd

import (
	"fmt"

	"github.com/ddbaker/papyru2/internal/config"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the resolved layout and effective configuration",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	paths, err := resolvePaths()
	if err != nil {
		return fmt.Errorf("failed to resolve application paths: %w", err)
	}
	cfg := config.Get()

	row := func(label, value string) {
		fmt.Printf("  %s %s\n", styleMuted.Render(fmt.Sprintf("%-16s", label)), styleValue.Render(value))
	}

	fmt.Println(styleHeader.Render("Layout"))
	row("mode", paths.Mode.Reason())
	row("app home", paths.AppHome)
	row("config", paths.ConfigFilePath(config.FileName))
	row("documents", cfg.Paths.ResolveDocumentRoot(paths.AppHome))
	row("logs", cfg.Paths.ResolveLogDir(paths.AppHome))
	row("preferences", cfg.Paths.ResolvePrefsFile(paths.AppHome))

	fmt.Println(styleHeader.Render("Behavior"))
	row("create throttle", cfg.Create.MinInterval().String())
	row("autosave idle", cfg.Autosave.IdleDuration().String())
	row("autosave tick", cfg.Autosave.TickInterval().String())
	row("catalog watch", fmt.Sprintf("%t", cfg.Catalog.WatchEnabled))
	if cfg.Logging.Enabled {
		row("log level", cfg.Logging.Level)
	} else {
		row("log level", "disabled")
	}
	return nil
}
