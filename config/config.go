// Package config provides loading and parsing of schema-org.yaml site
// configuration files. The configuration supplies the site-wide defaults
// that node definitions read while resolving: the canonical host, the
// default language and the site identity.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/schemaorg"
)

// File names searched for when Load is given a directory.
const (
	FileName    = "schema-org.yaml"
	AltFileName = "schema-org.yml"
)

// Merge strategies for resolvers that produce an already present id.
const (
	StrategyReplace = "replace"
	StrategyPatch   = "patch"
)

// Config represents a schema-org.yaml configuration file.
type Config struct {
	Site     SiteConfig      `yaml:"site"`
	Identity *IdentityConfig `yaml:"identity,omitempty"`
	Graph    *GraphConfig    `yaml:"graph,omitempty"`
}

// SiteConfig holds site-wide values.
type SiteConfig struct {
	// CanonicalHost is the absolute base url of the site (e.g., "https://example.com").
	// Required.
	CanonicalHost string `yaml:"canonical_host"`

	// Name is the site name used by the WebSite node.
	Name string `yaml:"name,omitempty"`

	// DefaultLanguage is the BCP 47 language tag for inLanguage fields.
	// Default: "en"
	DefaultLanguage string `yaml:"default_language,omitempty"`

	// TrailingSlash keeps a trailing slash on canonical page urls.
	TrailingSlash bool `yaml:"trailing_slash,omitempty"`
}

// IdentityConfig describes the organization or person the site represents.
type IdentityConfig struct {
	Type   string   `yaml:"type"` // "Organization" or "Person"
	Name   string   `yaml:"name"`
	URL    string   `yaml:"url,omitempty"`
	Logo   string   `yaml:"logo,omitempty"`
	SameAs []string `yaml:"same_as,omitempty"`
}

// GraphConfig controls graph assembly.
type GraphConfig struct {
	// StrictRequired makes the graph builder fail when a resolved node lacks
	// a field its definition declares as required.
	StrictRequired bool `yaml:"strict_required,omitempty"`

	// Strategy is the default merge strategy for duplicate ids: "replace" or "patch".
	// Default: "replace"
	Strategy string `yaml:"strategy,omitempty"`
}

// DefaultLanguage returns the configured language or "en".
func (c *Config) DefaultLanguage() string {
	if c == nil || c.Site.DefaultLanguage == "" {
		return "en"
	}
	return c.Site.DefaultLanguage
}

// CanonicalHost returns the canonical host without a trailing slash.
func (c *Config) CanonicalHost() string {
	if c == nil {
		return ""
	}
	return strings.TrimSuffix(c.Site.CanonicalHost, "/")
}

// Strategy returns the configured duplicate-id strategy or "replace".
func (c *Config) Strategy() string {
	if c == nil || c.Graph == nil || c.Graph.Strategy == "" {
		return StrategyReplace
	}
	return c.Graph.Strategy
}

// StrictRequired reports whether required fields are enforced.
func (c *Config) StrictRequired() bool {
	return c != nil && c.Graph != nil && c.Graph.StrictRequired
}

// IdentityType returns the identity's schema type, "Organization" when unset.
func (i *IdentityConfig) IdentityType() string {
	if i == nil || i.Type == "" {
		return "Organization"
	}
	return i.Type
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	host := c.Site.CanonicalHost
	switch {
	case host == "":
		errs = append(errs, errors.New("site.canonical_host is required"))
	case !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://"):
		errs = append(errs, fmt.Errorf("site.canonical_host %q must be an absolute http(s) url", host))
	}

	if c.Identity != nil {
		if c.Identity.Name == "" {
			errs = append(errs, errors.New("identity.name is required"))
		}
		if t := c.Identity.IdentityType(); t != "Organization" && t != "Person" {
			errs = append(errs, fmt.Errorf("identity.type %q must be Organization or Person", t))
		}
	}

	if s := c.Strategy(); s != StrategyReplace && s != StrategyPatch {
		errs = append(errs, fmt.Errorf("graph.strategy %q must be %q or %q", s, StrategyReplace, StrategyPatch))
	}

	if len(errs) > 0 {
		return schemaorg.NewConfigurationError("config.Validate",
			fmt.Errorf("%w: %w", schemaorg.ErrInvalidConfig, errors.Join(errs...)))
	}
	return nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads and parses a schema-org.yaml file from the given path.
// If the path is a directory, it looks for schema-org.yaml or schema-org.yml in that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath = ""
		for _, name := range []string{FileName, AltFileName} {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("no %s or %s found in %s", FileName, AltFileName, path)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}
