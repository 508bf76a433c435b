package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Reactome struct {
		BaseURL        string `yaml:"base_url"`
		BrowserURL     string `yaml:"browser_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Offline        bool   `yaml:"offline"` // serve only from the cache
	} `yaml:"reactome"`
	Cache struct {
		Path string `yaml:"path"`
	} `yaml:"cache"`
	BEL struct {
		Version int  `yaml:"version"`
		Memoize bool `yaml:"memoize"`
	} `yaml:"bel"`
	Output struct {
		Dir         string `yaml:"dir"`
		BadEvidence string `yaml:"bad_evidence"`
		Report      string `yaml:"report"`
	} `yaml:"output"`
	Document struct {
		Authors      string `yaml:"authors"`
		ContactEmail string `yaml:"contact_email"`
		Version      string `yaml:"version"`
	} `yaml:"document"`
	Species  []string `yaml:"species"`
	Pathways []string `yaml:"pathways"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Reactome.BaseURL = "http://reactome.org/ReactomeRESTfulAPI/RESTfulWS"
	cfg.Reactome.BrowserURL = "http://www.reactome.org/PathwayBrowser/#"
	cfg.Reactome.TimeoutSeconds = 60
	cfg.Cache.Path = "reactome.db"
	cfg.BEL.Version = 1
	cfg.BEL.Memoize = true
	cfg.Output.Dir = "."
	cfg.Output.BadEvidence = "bad_evidences.json"
	cfg.Output.Report = "run_report.json"
	cfg.Document.Authors = "Selventa; Nimisha Schneider; Natalie Catlett; William Hayes"
	cfg.Document.ContactEmail = "whayes@selventa.com"
	cfg.Document.Version = "0.1"
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config over the defaults
	cfg := Default()
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if baseURL := os.Getenv("REACTOME2BEL_BASE_URL"); baseURL != "" {
		cfg.Reactome.BaseURL = baseURL
	}
	if db := os.Getenv("REACTOME2BEL_DB"); db != "" {
		cfg.Cache.Path = db
	}
	if v := os.Getenv("REACTOME2BEL_BEL_VERSION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REACTOME2BEL_BEL_VERSION: %w", err)
		}
		cfg.BEL.Version = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BEL.Version != 1 && c.BEL.Version != 2 {
		return fmt.Errorf("bel.version must be 1 or 2, got %d", c.BEL.Version)
	}
	if c.Reactome.TimeoutSeconds < 0 {
		return fmt.Errorf("reactome.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Reactome.TimeoutSeconds) * time.Second
}
