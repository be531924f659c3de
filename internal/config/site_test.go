package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSiteConfig(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name        string
		configYAML  string
		expectError bool
		errorMsg    string
		validate    func(*testing.T, *SiteConfig)
	}{
		{
			name: "valid config",
			configYAML: `site:
  name: "Ajuda Acme"
  base_url: "https://ajuda.acme.com.br/"
  language: "pt-BR"
  description: "Tutoriais e perguntas frequentes"
seo:
  feed_items: 10
  export_dir: "/var/www/ajuda"
`,
			validate: func(t *testing.T, c *SiteConfig) {
				if c.Site.Name != "Ajuda Acme" {
					t.Errorf("expected name 'Ajuda Acme', got '%s'", c.Site.Name)
				}
				if c.Site.BaseURL != "https://ajuda.acme.com.br" {
					t.Errorf("expected trailing slash trimmed, got '%s'", c.Site.BaseURL)
				}
				if c.SEO.FeedItems != 10 {
					t.Errorf("expected feed_items 10, got %d", c.SEO.FeedItems)
				}
				if c.SEO.ExportDir != "/var/www/ajuda" {
					t.Errorf("expected export_dir '/var/www/ajuda', got '%s'", c.SEO.ExportDir)
				}
			},
		},
		{
			name: "defaults for optional keys",
			configYAML: `site:
  name: "Ajuda"
  base_url: "http://localhost:8080"
`,
			validate: func(t *testing.T, c *SiteConfig) {
				if c.SEO.FeedItems != defaultFeedItems {
					t.Errorf("expected default feed_items, got %d", c.SEO.FeedItems)
				}
				if c.Site.Language != "pt-BR" {
					t.Errorf("expected default language, got '%s'", c.Site.Language)
				}
			},
		},
		{
			name:        "missing name",
			configYAML:  "site:\n  base_url: \"https://a.example\"\n",
			expectError: true,
			errorMsg:    "site name is required",
		},
		{
			name:        "missing base url",
			configYAML:  "site:\n  name: \"Ajuda\"\n",
			expectError: true,
			errorMsg:    "site base_url is required",
		},
		{
			name:        "relative base url",
			configYAML:  "site:\n  name: \"Ajuda\"\n  base_url: \"/ajuda\"\n",
			expectError: true,
			errorMsg:    "absolute http(s) URL",
		},
		{
			name:        "non-positive feed items",
			configYAML:  "site:\n  name: \"Ajuda\"\n  base_url: \"https://a.example\"\nseo:\n  feed_items: 0\n",
			expectError: true,
			errorMsg:    "feed_items must be positive",
		},
		{
			name:        "invalid yaml",
			configYAML:  "site: [",
			expectError: true,
			errorMsg:    "failed to parse config",
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "site"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tt.configYAML), 0o600); err != nil {
				t.Fatal(err)
			}

			config, err := LoadSiteConfig(path)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorMsg)
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, config)
		})
	}
}

func TestLoadSiteConfig_MissingFile(t *testing.T) {
	_, err := LoadSiteConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLoadSite(t *testing.T) {
	t.Setenv("SITE_CONFIG_PATH", "")
	c, err := LoadSite()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Site.BaseURL != "http://localhost:8080" {
		t.Errorf("expected default base url, got '%s'", c.Site.BaseURL)
	}
}
