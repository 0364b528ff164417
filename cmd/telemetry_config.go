/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/charm/internal/telemetry"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage telemetry settings",
	Long: `View and manage charm's anonymous telemetry settings.

When enabled, charm reports whether plan requests succeeded, how long they took
and how many days came back. Profile values such as age, height and weight are
never sent.`,
}

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current telemetry status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTelemetryStatus(cmd.OutOrStdout(), GetConfig().Telemetry.Disabled)
	},
}

var telemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTelemetry(cmd.OutOrStdout(), true)
	},
}

var telemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTelemetry(cmd.OutOrStdout(), false)
	},
}

// configCmd is the parent config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage charm configuration",
}

func runTelemetryStatus(w io.Writer, disabledByConfig bool) error {
	cfg, err := telemetry.Load()
	if err != nil {
		return fmt.Errorf("failed to read telemetry status: %w", err)
	}

	switch {
	case disabledByConfig:
		fmt.Fprintln(w, "Telemetry: disabled by configuration (telemetry.disabled)")
	case cfg.NeedsConsent():
		fmt.Fprintln(w, "Telemetry: not configured (off)")
		fmt.Fprintln(w, "   To enable: charm config telemetry enable")
	case cfg.IsEnabled():
		fmt.Fprintln(w, "Telemetry: enabled")
		fmt.Fprintf(w, "   Anonymous ID: %s\n", cfg.AnonymousID)
		fmt.Fprintln(w, "   To disable: charm config telemetry disable")
	default:
		fmt.Fprintln(w, "Telemetry: disabled")
		fmt.Fprintln(w, "   To enable: charm config telemetry enable")
	}
	return nil
}

func setTelemetry(w io.Writer, enabled bool) error {
	cfg, err := telemetry.Load()
	if err != nil {
		return fmt.Errorf("failed to read telemetry status: %w", err)
	}
	if enabled {
		cfg.Enable()
	} else {
		cfg.Disable()
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save telemetry setting: %w", err)
	}

	if enabled {
		fmt.Fprintln(w, "Telemetry enabled. Thank you for helping improve charm!")
	} else {
		fmt.Fprintln(w, "Telemetry disabled.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(telemetryCmd)
	telemetryCmd.AddCommand(telemetryStatusCmd, telemetryEnableCmd, telemetryDisableCmd)
}
