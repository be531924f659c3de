package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newSEOCmd(open openFunc, logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	seo := &cobra.Command{
		Use:   "seo",
		Short: "Generate search engine documents",
	}

	var dir string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write sitemap.xml and feed.xml",
		Long: `Export renders the sitemap and the RSS feed of published articles into a directory.

Without --dir the seo.export_dir of the site configuration is used.

Examples:
  helpctl seo export
  helpctl seo export --dir /var/www/ajuda`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := open(cmd.Context(), logger(cmd))
			if err != nil {
				return err
			}
			defer func() { _ = b.Close() }()

			target := dir
			if target == "" {
				target = b.DefaultExportDir
			}
			res, err := b.SEO.Export(cmd.Context(), target)
			if err != nil {
				return fmt.Errorf("export seo documents: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\nwrote %s\n", res.Sitemap, res.Feed)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory (default: seo.export_dir)")

	seo.AddCommand(exportCmd)
	return seo
}
