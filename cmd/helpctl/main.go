// Command helpctl runs help center maintenance tasks against the database:
// bulk redirect imports and one-off SEO exports.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"helpcenter/internal/config"
	pgRepo "helpcenter/internal/infra/adapter/persistence/postgres"
	"helpcenter/internal/infra/db"
	"helpcenter/internal/observability/logging"
	redirectUC "helpcenter/internal/usecase/redirect"
	seoUC "helpcenter/internal/usecase/seo"
)

type redirectImporter interface {
	Import(ctx context.Context, r io.Reader) (*redirectUC.ImportReport, error)
}

type seoExporter interface {
	Export(ctx context.Context, dir string) (*seoUC.ExportResult, error)
}

// backend is what the subcommands run against. Close releases the database.
type backend struct {
	Redirects redirectImporter
	SEO       seoExporter
	// DefaultExportDir comes from the site configuration.
	DefaultExportDir string
	Close            func() error
}

type openFunc func(ctx context.Context, logger *slog.Logger) (*backend, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(openBackend).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(open openFunc) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "helpctl",
		Short: "Help center maintenance CLI",
		Long: `helpctl runs maintenance tasks against the help center database.

Example usage:
  helpctl redirects import legacy.csv   # Upsert redirects from a CSV file
  helpctl seo export --dir public       # Write sitemap.xml and feed.xml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	logger := func(cmd *cobra.Command) *slog.Logger {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return logging.NewLoggerTo(cmd.ErrOrStderr(), level)
	}

	root.AddCommand(newRedirectsCmd(open, logger), newSEOCmd(open, logger))
	return root
}

// openBackend connects to PostgreSQL using the same DATABASE_URL as the API.
func openBackend(ctx context.Context, logger *slog.Logger) (*backend, error) {
	site, err := config.LoadSite()
	if err != nil {
		return nil, fmt.Errorf("load site config: %w", err)
	}
	database, err := db.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	articles := pgRepo.NewArticleRepo(database)
	return &backend{
		Redirects: &redirectUC.Service{Repo: pgRepo.NewRedirectRepo(database), Logger: logger},
		SEO: &seoUC.Service{
			Articles:   articles,
			Categories: pgRepo.NewCategoryRepo(database),
			Site: seoUC.Site{
				Name:        site.Site.Name,
				BaseURL:     site.Site.BaseURL,
				Language:    site.Site.Language,
				Description: site.Site.Description,
				FeedItems:   site.SEO.FeedItems,
			},
		},
		DefaultExportDir: site.SEO.ExportDir,
		Close:            database.Close,
	}, nil
}
