package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/charm/internal/profile"
	"github.com/josephgoksu/charm/internal/session"
	"github.com/josephgoksu/charm/internal/ui"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Fill in your profile interactively and generate a plan",
	Long: `Open the interactive profile form. BMI updates as you type; press enter to
generate a plan, ctrl+t to toggle the theme and esc to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsInteractive() {
			return errors.New("charm form needs an interactive terminal; use 'charm generate' instead")
		}

		p, err := profileFromFlags(cmd, profile.NewOsLoader())
		if err != nil {
			return err
		}

		opts := []session.Option{session.WithProfile(p)}
		if dark, _ := cmd.Flags().GetBool("dark"); dark {
			opts = append(opts, session.WithTheme(session.ThemeDark))
		}

		sess, tc, err := newPlanSession("form", opts...)
		if err != nil {
			return err
		}
		defer func() { _ = tc.Close() }()

		return ui.RunForm(cmd.Context(), sess)
	},
}

func init() {
	rootCmd.AddCommand(formCmd)
	addProfileFlags(formCmd)
	formCmd.Flags().Bool("dark", false, "start with the dark theme")
}
