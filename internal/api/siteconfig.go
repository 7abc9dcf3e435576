package api

import (
	"embed"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/site.yaml
var siteYAML embed.FS

// SiteConfig drives sitemap generation and SEO defaults.
type SiteConfig struct {
	Site struct {
		Name        string `yaml:"name"`
		BaseURL     string `yaml:"base_url"`
		Description string `yaml:"description"`
	} `yaml:"site"`
	StaticRoutes  []string `yaml:"static_routes"`
	NavCategories []string `yaml:"nav_categories"`
}

// LoadSiteConfig reads the embedded site.yaml, falling back to the given
// filesystem path for local development. Environment variables within
// the YAML (e.g. ${SITE_BASE_URL}) are expanded before parsing.
func LoadSiteConfig(path string) (*SiteConfig, error) {
	data, err := siteYAML.ReadFile("config/site.yaml")
	if err != nil {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	expanded := os.ExpandEnv(string(data))

	var cfg SiteConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = "https://jobsyde.com"
	}
	cfg.Site.BaseURL = strings.TrimRight(cfg.Site.BaseURL, "/")

	return &cfg, nil
}
