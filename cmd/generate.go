/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/charm/internal/config"
	"github.com/josephgoksu/charm/internal/presenter"
	"github.com/josephgoksu/charm/internal/profile"
	"github.com/josephgoksu/charm/internal/session"
	"github.com/josephgoksu/charm/internal/ui"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a 7-day diet and workout plan",
	Long: `Send a profile to the CHARM plan service and print the weekly plan.

The profile starts from the form defaults, then --profile, then individual flags.
Age, height and weight are required.`,
	Example: `  charm generate --age 30 --height 172 --weight 68 --goal muscle
  charm generate --profile profile.yaml --format markdown > plan.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileFromFlags(cmd, profile.NewOsLoader())
		if err != nil {
			return err
		}
		return runGenerate(cmd.Context(), p, generateOutput{
			out:         cmd.OutOrStdout(),
			errOut:      cmd.ErrOrStderr(),
			format:      config.LoadOutputFormat(),
			interactive: ui.IsInteractive(),
			width:       outputWidth(),
		})
	},
}

type generateOutput struct {
	out, errOut io.Writer
	format      string
	interactive bool
	width       int
}

func outputWidth() int {
	if w := GetConfig().Output.Width; w > 0 {
		return w
	}
	return ui.TerminalWidth()
}

func runGenerate(ctx context.Context, p profile.UserProfile, o generateOutput) error {
	// Fail on incomplete input before touching the network or telemetry.
	if err := profile.ValidateForSubmission(p).Err(); err != nil {
		return err
	}
	styled := o.interactive && o.format == config.FormatText
	printAdvisories(o, styled, profile.Advisories(p))

	sess, tc, err := newPlanSession("generate", session.WithProfile(p))
	if err != nil {
		return err
	}
	defer func() { _ = tc.Close() }()

	var spinner *ui.Spinner
	if styled {
		spinner = ui.NewSpinner(o.errOut, "Generating plan...")
		spinner.Start()
	}
	weekly, err := sess.Submit(ctx)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	rendered := presenter.Render(weekly)
	if styled {
		fmt.Fprintln(o.out, ui.RenderPlanView(rendered, ui.StylesFor(sess.Snapshot().Theme), o.width))
		return nil
	}
	return presenter.Write(o.out, rendered, o.format)
}

// printAdvisories shows out-of-range values. They never block the request.
func printAdvisories(o generateOutput, styled bool, advisories []profile.Advisory) {
	if len(advisories) == 0 {
		return
	}
	if !styled {
		for _, a := range advisories {
			slog.Warn("profile advisory", "field", a.Field, "message", a.Message)
		}
		return
	}
	lines := make([]string, len(advisories))
	for i, a := range advisories {
		lines[i] = a.Message
	}
	panel := ui.NewPanel("Check these values", strings.Join(lines, "\n")).
		WithBorderColor(ui.ColorWarning).
		WithWidth(min(o.width, 80) - 2)
	fmt.Fprintln(o.errOut, panel.Render())
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addProfileFlags(generateCmd)
}
