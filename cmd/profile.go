package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"

	"github.com/josephgoksu/charm/internal/config"
	"github.com/josephgoksu/charm/internal/profile"
	"github.com/josephgoksu/charm/internal/ui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create and check profile files",
}

var profileInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a profile template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := profile.DefaultFileName
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		return runProfileInit(cmd.OutOrStdout(), profile.NewOsLoader(), path, force)
	},
}

var profileCheckCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Show BMI, submission readiness and advisories for a profile file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProfileCheck(cmd.OutOrStdout(), profile.NewOsLoader(), args[0], config.LoadOutputFormat())
	},
}

func runProfileInit(w io.Writer, loader *profile.Loader, path string, force bool) error {
	exists, err := loader.Exists(path)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := loader.Save(path, profile.Template()); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Wrote %s\n", ui.Icon("✓", ui.StyleSuccess), path)
	fmt.Fprintf(w, "Edit it, then run: charm generate --profile %s\n", path)
	return nil
}

func runProfileCheck(w io.Writer, loader *profile.Loader, path, format string) error {
	p, err := loader.Load(path)
	if err != nil {
		return err
	}
	report := profile.Check(p)

	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case config.FormatYAML:
		return yaml.NewEncoder(w).Encode(report)
	}
	ui.RenderPageHeader(w, "Profile check", path)
	_, err = fmt.Fprintln(w, ui.RenderReport(report))
	return err
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileInitCmd, profileCheckCmd)
	profileInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")
}
