package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redirectUC "helpcenter/internal/usecase/redirect"
	seoUC "helpcenter/internal/usecase/seo"
)

type stubImporter struct {
	got    string
	report *redirectUC.ImportReport
	err    error
}

func (s *stubImporter) Import(_ context.Context, r io.Reader) (*redirectUC.ImportReport, error) {
	b, _ := io.ReadAll(r)
	s.got = string(b)
	return s.report, s.err
}

type stubExporter struct {
	dir string
}

func (s *stubExporter) Export(_ context.Context, dir string) (*seoUC.ExportResult, error) {
	s.dir = dir
	return &seoUC.ExportResult{
		Sitemap: filepath.Join(dir, "sitemap.xml"),
		Feed:    filepath.Join(dir, "feed.xml"),
	}, nil
}

func run(t *testing.T, b *backend, args ...string) (string, error) {
	t.Helper()
	closed := false
	b.Close = func() error { closed = true; return nil }
	open := func(context.Context, *slog.Logger) (*backend, error) { return b, nil }

	cmd := newRootCmd(open)
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		assert.True(t, closed, "backend must be closed")
	}
	return out.String(), err
}

/* ───────── 1. redirects import ───────── */

func TestRedirectsImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.csv")
	require.NoError(t, os.WriteFile(path, []byte("from,to\n/old,/articles/new\n"), 0o600))

	imp := &stubImporter{report: &redirectUC.ImportReport{
		Created: 1,
		Errors:  []redirectUC.RowError{{Line: 3, Message: "to is required"}},
	}}
	out, err := run(t, &backend{Redirects: imp}, "redirects", "import", path)
	require.NoError(t, err)

	assert.Equal(t, "from,to\n/old,/articles/new\n", imp.got)
	assert.Contains(t, out, "created: 1")
	assert.Contains(t, out, "rejected: 1")
	assert.Contains(t, out, "line 3: to is required")
}

func TestRedirectsImport_Errors(t *testing.T) {
	_, err := run(t, &backend{Redirects: &stubImporter{}}, "redirects", "import")
	assert.Error(t, err, "file argument is required")

	_, err = run(t, &backend{Redirects: &stubImporter{}}, "redirects", "import", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "big.csv")
	require.NoError(t, os.WriteFile(path, []byte("/a,/b\n"), 0o600))
	_, err = run(t, &backend{Redirects: &stubImporter{err: redirectUC.ErrImportTooLarge}}, "redirects", "import", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, redirectUC.ErrImportTooLarge))
}

/* ───────── 2. seo export ───────── */

func TestSEOExport(t *testing.T) {
	exp := &stubExporter{}
	out, err := run(t, &backend{SEO: exp, DefaultExportDir: "public"}, "seo", "export")
	require.NoError(t, err)
	assert.Equal(t, "public", exp.dir)
	assert.Contains(t, out, filepath.Join("public", "sitemap.xml"))

	exp = &stubExporter{}
	_, err = run(t, &backend{SEO: exp, DefaultExportDir: "public"}, "seo", "export", "--dir", "/srv/ajuda")
	require.NoError(t, err)
	assert.Equal(t, "/srv/ajuda", exp.dir)
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	_, err := run(t, &backend{}, "nonexistent")
	assert.Error(t, err)
}
