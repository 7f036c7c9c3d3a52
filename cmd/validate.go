package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/layout-cli/internal/layout"
	"github.com/sells-group/layout-cli/internal/plan"
)

var validateCmd = &cobra.Command{
	Use:   "validate <plan>",
	Short: "Check a plan's boundary and parameters without generating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("validate"); err != nil {
			return err
		}
		p, err := plan.Load(args[0], cfg.Layout)
		if err != nil {
			return err
		}
		boundary, err := p.SiteBoundary()
		if err != nil {
			return err
		}
		normalized, err := layout.Validate(boundary, p.Parameters)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d vertices, %s layout)\n",
			args[0], len(normalized), p.Parameters.SubdivisionType)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
