package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newRedirectsCmd(open openFunc, logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	redirects := &cobra.Command{
		Use:   "redirects",
		Short: "Manage legacy URL redirects",
	}

	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Upsert redirects from a from,to[,status] CSV file",
		Long: `Import reads "from,to[,status]" rows and creates or updates one redirect per row.

A header row is optional. Rejected rows are listed but do not stop the import.

Examples:
  helpctl redirects import legacy.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			b, err := open(cmd.Context(), logger(cmd))
			if err != nil {
				return err
			}
			defer func() { _ = b.Close() }()

			report, err := b.Redirects.Import(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("import redirects: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created: %d\nupdated: %d\nrejected: %d\n", report.Created, report.Updated, len(report.Errors))
			for _, rowErr := range report.Errors {
				fmt.Fprintf(out, "  line %d: %s\n", rowErr.Line, rowErr.Message)
			}
			return nil
		},
	}

	redirects.AddCommand(importCmd)
	return redirects
}
