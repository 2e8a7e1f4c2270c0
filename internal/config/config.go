// Package config provides configuration management for go-probview.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var AppVersion = "-unset-" // will be set at build time

const (
	DefaultTemplate    = "problem-view"
	DefaultWebPort     = 11980
	DefaultProblemsDir = "problems"
	DefaultLanguages   = "tools/config.json"
	DefaultDBPath      = "data/probview.sq3"

	// Environment overrides
	EnvConfigFile  = "PROBVIEW_CONFIG"
	EnvDBPath      = "PROBVIEW_DB"
	EnvProblemsDir = "PROBVIEW_PROBLEMS"
)

// MainConfig holds the main configuration for go-probview
type MainConfig struct {
	// Web interface settings
	Web WebConfig `yaml:"web" json:"web"`

	// Database settings
	Database DatabaseConfig `yaml:"database" json:"database"`

	// Problem corpus on disk
	Corpus CorpusConfig `yaml:"corpus" json:"corpus"`

	// Background re-indexing
	Index IndexConfig `yaml:"index" json:"index"`

	AppVersion string `yaml:"-" json:"app_version"` // Application version, set at build time
}

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenPort     int        `yaml:"listen_port" json:"listen_port"`
	SSL            bool       `yaml:"ssl" json:"ssl"`
	CertFile       string     `yaml:"cert_file,omitempty" json:"cert_file,omitempty"`
	KeyFile        string     `yaml:"key_file,omitempty" json:"key_file,omitempty"`
	Debug          bool       `yaml:"debug" json:"debug"`
	AccessLog      bool       `yaml:"access_log" json:"access_log"` // Apache style access log instead of gin's default
	TrustedProxies []string   `yaml:"trusted_proxies" json:"trusted_proxies"`
	HomeLinks      []HomeLink `yaml:"home_links" json:"home_links"` // Fixed example links on the landing page
}

// HomeLink is one of the fixed navigation links shown on the landing page
type HomeLink struct {
	Slug  string `yaml:"slug" json:"slug"`
	Label string `yaml:"label" json:"label"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path    string `yaml:"path" json:"path"` // Path to the problem index database
	WALMode bool   `yaml:"wal_mode" json:"wal_mode"`
}

// CorpusConfig describes where problems and the language table live
type CorpusConfig struct {
	ProblemsDir     string `yaml:"problems_dir" json:"problems_dir"`
	LanguagesFile   string `yaml:"languages_file" json:"languages_file"`
	DefaultTemplate string `yaml:"default_template" json:"default_template"`
}

// IndexConfig controls the corpus indexer
type IndexConfig struct {
	Schedule  string `yaml:"schedule" json:"schedule"`     // cron spec, empty disables scheduled runs
	OnStartup bool   `yaml:"on_startup" json:"on_startup"` // run one pass before the web server starts
}

var DefaultHomeLinks = []HomeLink{
	{Slug: "0001_two-sum", Label: "View Problem #1: Two Sum"},
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	links := make([]HomeLink, len(DefaultHomeLinks))
	copy(links, DefaultHomeLinks)
	return &MainConfig{
		AppVersion: AppVersion,
		Web: WebConfig{
			ListenPort:     DefaultWebPort,
			TrustedProxies: []string{"127.0.0.1", "::1"},
			HomeLinks:      links,
		},
		Database: DatabaseConfig{
			Path:    DefaultDBPath,
			WALMode: true,
		},
		Corpus: CorpusConfig{
			ProblemsDir:     DefaultProblemsDir,
			LanguagesFile:   DefaultLanguages,
			DefaultTemplate: DefaultTemplate,
		},
		Index: IndexConfig{
			Schedule:  "@every 5m",
			OnStartup: true,
		},
	}
}

// LoadFile builds a config from defaults, an optional YAML file and environment overrides.
// $PROBVIEW_CONFIG replaces path when set. An empty path skips the file.
// The result is not validated; callers apply their flag overrides and then call Validate.
func LoadFile(path string) (*MainConfig, error) {
	if env := os.Getenv(EnvConfigFile); env != "" {
		path = env
	}

	cfg := NewDefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if env := os.Getenv(EnvDBPath); env != "" {
		cfg.Database.Path = env
	}
	if env := os.Getenv(EnvProblemsDir); env != "" {
		cfg.Corpus.ProblemsDir = env
	}
	return cfg, nil
}

// Validate checks that required fields are present and values are in range.
func (c *MainConfig) Validate() error {
	if c.Web.ListenPort < 1024 || c.Web.ListenPort > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1024 and 65535)", c.Web.ListenPort)
	}
	if c.Web.SSL && (c.Web.CertFile == "" || c.Web.KeyFile == "") {
		return errors.New("SSL enabled but cert_file or key_file not specified in config")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path is required")
	}
	if strings.TrimSpace(c.Corpus.ProblemsDir) == "" {
		return errors.New("corpus.problems_dir is required")
	}
	if c.Corpus.DefaultTemplate == "" {
		c.Corpus.DefaultTemplate = DefaultTemplate
	}
	for i, link := range c.Web.HomeLinks {
		if link.Slug == "" {
			return fmt.Errorf("web.home_links[%d]: slug is required", i)
		}
	}
	return nil
}
