package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ddbaker/papyru2/internal/config"
	"github.com/ddbaker/papyru2/internal/logging"
	"github.com/ddbaker/papyru2/internal/util"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View engine logs",
	Long: `View and filter the engine's JSON log file.

Examples:
  # Show the last 50 entries
  papyru2 logs

  # Only warnings and errors from the autosave worker
  papyru2 logs --level warn --component autosave

  # Everything about one note from the last hour
  papyru2 logs --note ~/notes/2026/02/28/todo.txt --since 1h -n 0

  # Export matching entries as CSV
  papyru2 logs --export entries.csv --format csv`,
	RunE: runLogs,
}

var (
	logsTail      int
	logsLevel     string
	logsComponent string
	logsNote      string
	logsSince     string
	logsContains  string
	logsExport    string
	logsFormat    string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "Filter by engine component (workflow/autosave/catalog/...)")
	logsCmd.Flags().StringVar(&logsNote, "note", "", "Filter to entries about one note path")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsContains, "grep", "", "Filter to messages containing a substring")
	logsCmd.Flags().StringVar(&logsExport, "export", "", "Write matching entries to a file instead of stdout")
	logsCmd.Flags().StringVar(&logsFormat, "format", "json", "Export format (json/text/csv)")
}

func runLogs(cmd *cobra.Command, args []string) error {
	paths, err := resolvePaths()
	if err != nil {
		return fmt.Errorf("failed to resolve application paths: %w", err)
	}
	cfg := config.Get()
	logDir := cfg.Paths.ResolveLogDir(paths.AppHome)

	entries, err := logging.ReadLogs(logDir)
	if err != nil {
		return fmt.Errorf("failed to read logs: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println(styleMuted.Render("No log entries found."))
		return nil
	}

	filter := logging.LogFilter{
		Component:       logsComponent,
		NotePath:        logsNote,
		MessageContains: logsContains,
	}
	if logsLevel != "" {
		filter.Level = logging.ParseLevel(logsLevel)
	}
	if logsSince != "" {
		duration, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		filter.StartTime = time.Now().Add(-duration)
	}
	entries = logging.FilterLogs(entries, filter)

	if logsExport != "" {
		if err := logging.ExportLogEntries(entries, logsExport, logsFormat); err != nil {
			return fmt.Errorf("failed to export logs: %w", err)
		}
		fmt.Printf("Exported %d entries to %s\n", len(entries), styleValue.Render(logsExport))
		return nil
	}

	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}
	if len(entries) == 0 {
		fmt.Println(styleMuted.Render("No matching log entries found."))
		return nil
	}
	for _, entry := range entries {
		fmt.Println(formatLogEntry(entry))
	}
	return nil
}

func formatLogEntry(entry logging.LogEntry) string {
	var sb strings.Builder

	sb.WriteString(styleMuted.Render("[" + entry.Timestamp.Format("15:04:05.000") + "]"))
	sb.WriteString(" ")
	sb.WriteString(levelStyle(entry.Level).Render("[" + entry.Level + "]"))
	sb.WriteString(" ")
	sb.WriteString(entry.Message)

	if entry.Component != "" {
		sb.WriteString(" ")
		sb.WriteString(styleMuted.Render("component=" + entry.Component))
	}
	if entry.NotePath != "" {
		sb.WriteString(" ")
		sb.WriteString(styleMuted.Render("note=" + util.ShortenPath(entry.NotePath, 60)))
	}
	for key, value := range entry.Attrs {
		sb.WriteString(" ")
		sb.WriteString(styleMuted.Render(key + "="))
		// Attr values can carry whole editor snapshots; keep lines readable.
		sb.WriteString(util.TruncateString(fmt.Sprintf("%v", value), 120))
	}
	return sb.String()
}

func levelStyle(level string) lipgloss.Style {
	switch level {
	case logging.LevelDebug:
		return styleMuted
	case logging.LevelWarn:
		return styleHeader
	case logging.LevelError:
		return styleErr
	default:
		return styleValue
	}
}
