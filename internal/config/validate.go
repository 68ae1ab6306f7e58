package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateCMS(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/cinesync/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'cinesync config init')", defaultPath)
	}
	if c.TMDB.BaseURL == "" {
		return errors.New("tmdb.base_url must be set")
	}
	return nil
}

func (c *Config) validateCMS() error {
	if c.CMS.APIToken == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/cinesync/config.toml"
		}
		return fmt.Errorf("cms.api_token is required. Set CMS_API_TOKEN env var or edit %s (create with 'cinesync config init')", defaultPath)
	}
	if c.CMS.BaseURL == "" {
		return errors.New("cms.base_url must be set")
	}
	if c.CMS.MoviesCollectionID == "" {
		return errors.New("cms.movies_collection_id must be set")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.Pages < 1 {
		return errors.New("sync.pages must be at least 1")
	}
	if c.Sync.MaxConcurrent < 1 {
		return errors.New("sync.max_concurrent must be at least 1")
	}
	if c.Sync.MinIntervalMS < 0 {
		return errors.New("sync.min_interval_ms must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
