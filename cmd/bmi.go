package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/charm/internal/config"
	"github.com/josephgoksu/charm/internal/profile"
)

var errBMIInputs = errors.New("height and weight must both be positive numbers")

var bmiCmd = &cobra.Command{
	Use:     "bmi",
	Short:   "Compute BMI and BMI category",
	Example: `  charm bmi --height 170 --weight 70`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileFromFlags(cmd, profile.NewOsLoader())
		if err != nil {
			return err
		}
		return runBMI(cmd.OutOrStdout(), p, config.LoadOutputFormat())
	},
}

func runBMI(w io.Writer, p profile.UserProfile, format string) error {
	m := profile.ComputeMetrics(p)
	if !m.Defined {
		return errBMIInputs
	}
	if format == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}
	_, err := fmt.Fprintln(w, m.String())
	return err
}

func init() {
	rootCmd.AddCommand(bmiCmd)
	addProfileFlags(bmiCmd, profile.FieldHeightCM, profile.FieldWeightKG)
}
