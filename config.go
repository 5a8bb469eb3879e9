package backoffice

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the environment-level settings of the back-office API client.
// BaseURL is the single externally tunable behavior of the core; everything
// else has a working default.
type Config struct {
	BaseURL   string        `yaml:"baseURL" short:"u" long:"url" env:"BACKOFFICE_URL" description:"back-office API base URL"`
	TokenPath string        `yaml:"tokenPath,omitempty" long:"token-path" env:"BACKOFFICE_TOKEN_PATH" description:"file persisting the session token across runs"`
	Timeout   time.Duration `yaml:"timeout,omitempty" long:"timeout" description:"HTTP timeout"`
	PageSize  int           `yaml:"pageSize,omitempty" long:"page-size" description:"default collection page size"`
}

// LoadConfig reads a YAML config file and applies environment fallbacks.
// A missing file is not an error; the environment alone may carry the URL.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err == nil {
			if err = yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	if config.BaseURL == "" {
		config.BaseURL = os.Getenv("BACKOFFICE_URL")
	}
	if config.TokenPath == "" {
		config.TokenPath = os.Getenv("BACKOFFICE_TOKEN_PATH")
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("config: baseURL is required")
	}
	return nil
}
