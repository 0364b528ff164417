package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/charm/internal/logger"
	"github.com/josephgoksu/charm/internal/ui"
)

var crashLogsCmd = &cobra.Command{
	Use:   "crash-logs",
	Short: "List crash logs, newest first",
	Long: `List the crash logs charm wrote after unexpected failures. Logs hold the
command, version and which profile fields were edited, never their values.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		show, _ := cmd.Flags().GetBool("show")
		return runCrashLogs(cmd.OutOrStdout(), show)
	},
}

// runCrashLogs lists crash logs and, with show, prints the newest one.
func runCrashLogs(w io.Writer, show bool) error {
	logs, err := logger.ListCrashLogs()
	if err != nil {
		return fmt.Errorf("failed to list crash logs: %w", err)
	}
	if len(logs) == 0 {
		fmt.Fprintln(w, "No crash logs.")
		return nil
	}

	for i := len(logs) - 1; i >= 0; i-- {
		fmt.Fprintln(w, filepath.Base(logs[i]))
	}
	fmt.Fprintf(w, "\n%s\n", ui.StyleSubtle.Render("Directory: "+filepath.Dir(logs[0])))

	if show {
		data, err := os.ReadFile(logs[len(logs)-1])
		if err != nil {
			return fmt.Errorf("failed to read crash log: %w", err)
		}
		fmt.Fprintf(w, "\n%s", data)
	}
	return nil
}

func init() {
	configCmd.AddCommand(crashLogsCmd)
	crashLogsCmd.Flags().Bool("show", false, "print the newest crash log")
}
