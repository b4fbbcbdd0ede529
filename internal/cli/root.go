// Package cli implements the dqreport command line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the dqreport command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dqreport",
		Short: "Render data quality reports and service tokens offline",
		Long: `dqreport renders the same reports the email service produces, straight
from a data quality check JSON file, and mints tokens for calling the service.

Examples:
  dqreport render --input dq.json --format html     # Email HTML to stdout
  dqreport render --input dq.json --format pdf --out report.pdf
  dqreport token --secret "$JWT_SECRET" --ttl 1h    # Bearer token for the API`,
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newTokenCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
