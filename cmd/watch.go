package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/charm/internal/profile"
	"github.com/josephgoksu/charm/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <profile.yaml>",
	Short: "Recompute BMI and validation every time a profile file is saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd.Context(), cmd.OutOrStdout(), profile.NewOsLoader(), args[0], profile.DefaultWatchDelay)
	},
}

// runWatch prints a report for path on start and after each change until ctx ends.
func runWatch(ctx context.Context, w io.Writer, loader *profile.Loader, path string, delay time.Duration) error {
	var mu sync.Mutex
	report := func(r profile.Report, err error) {
		mu.Lock()
		defer mu.Unlock()
		stamp := ui.StyleSubtle.Render(time.Now().Format("15:04:05"))
		if err != nil {
			fmt.Fprintln(w, ui.RenderErrorPanel(stamp+" "+path, err.Error()))
			return
		}
		fmt.Fprintln(w, ui.RenderPanel(stamp+" "+path, ui.RenderReport(r)))
	}

	watcher, err := profile.NewWatcher(path, loader, report)
	if err != nil {
		return err
	}
	watcher.SetDelay(delay)
	defer watcher.Stop()
	if err := watcher.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
