// Package config loads the site description used by public documents
// (sitemap, RSS feed, alert links).
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SiteConfig represents the site.yaml file.
type SiteConfig struct {
	Site struct {
		Name        string `yaml:"name"`
		BaseURL     string `yaml:"base_url"`
		Language    string `yaml:"language"`
		Description string `yaml:"description"`
	} `yaml:"site"`
	SEO struct {
		FeedItems int    `yaml:"feed_items"`
		ExportDir string `yaml:"export_dir"`
	} `yaml:"seo"`
}

const defaultFeedItems = 20

// DefaultSiteConfig is used when SITE_CONFIG_PATH is not set.
func DefaultSiteConfig() *SiteConfig {
	var c SiteConfig
	c.Site.Name = "Central de Ajuda"
	c.Site.BaseURL = "http://localhost:8080"
	c.Site.Language = "pt-BR"
	c.SEO.FeedItems = defaultFeedItems
	c.SEO.ExportDir = "public"
	return &c
}

// LoadSiteConfig loads site configuration from a YAML file. Missing optional
// keys take the defaults of DefaultSiteConfig.
// The path parameter is expected to come from a trusted source (env var or CLI flag).
func LoadSiteConfig(path string) (*SiteConfig, error) {
	// #nosec G304 -- path is provided by trusted source (env or CLI flag), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultSiteConfig()
	config.Site.Name = ""
	config.Site.BaseURL = ""
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSiteConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Site.BaseURL = strings.TrimRight(config.Site.BaseURL, "/")

	return config, nil
}

func validateSiteConfig(config *SiteConfig) error {
	if strings.TrimSpace(config.Site.Name) == "" {
		return fmt.Errorf("site name is required")
	}
	if config.Site.BaseURL == "" {
		return fmt.Errorf("site base_url is required")
	}
	u, err := url.Parse(config.Site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("site base_url must be an absolute http(s) URL")
	}
	if config.SEO.FeedItems <= 0 {
		return fmt.Errorf("seo feed_items must be positive")
	}
	return nil
}

// LoadSite reads SITE_CONFIG_PATH when set and falls back to the defaults otherwise.
func LoadSite() (*SiteConfig, error) {
	path := os.Getenv("SITE_CONFIG_PATH")
	if path == "" {
		return DefaultSiteConfig(), nil
	}
	return LoadSiteConfig(path)
}
