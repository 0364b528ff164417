/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/charm/internal/logger"
	"github.com/josephgoksu/charm/internal/ui"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "charm",
	Short: "CHARM: Care, Health & AI-based Regimen Manager",
	Long: `charm collects your biometrics and preferences, asks the CHARM plan service
for a 7-day diet and workout plan, and renders it in the terminal.

Start with 'charm form' for the interactive form, or 'charm generate' for a
one-shot run from flags or a profile file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(viper.GetBool("verbose"), cmd.ErrOrStderr())
		logger.SetCommand(strings.TrimSpace(cmd.CommandPath() + " " + strings.Join(args, " ")))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd, err := rootCmd.ExecuteContextC(ctx); err != nil {
		PrintError(ui.FriendlyError(err), err)
		trackCommandError(cmd, err)
		stop()
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)
	logger.SetVersion(version)
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.charm.yaml or $HOME/.charm.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("service-url", "", "plan service base URL")
	rootCmd.PersistentFlags().Int("timeout", 0, "plan request timeout in seconds")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: text, json, yaml or markdown")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("service.baseURL", rootCmd.PersistentFlags().Lookup("service-url"))
	_ = viper.BindPFlag("service.timeoutSeconds", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
}
