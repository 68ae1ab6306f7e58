package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeCMS()
	c.normalizeSync()
	c.normalizeMedia()
	if err := c.normalizeGenres(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = value
		}
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
}

func (c *Config) normalizeCMS() {
	if c.CMS.APIToken == "" {
		if value, ok := os.LookupEnv("CMS_API_TOKEN"); ok {
			c.CMS.APIToken = value
		}
	}
	c.CMS.APIToken = strings.TrimSpace(c.CMS.APIToken)
	c.CMS.BaseURL = strings.TrimSpace(c.CMS.BaseURL)
	if c.CMS.BaseURL == "" {
		c.CMS.BaseURL = defaultCMSBaseURL
	}
	c.CMS.MoviesCollectionID = strings.TrimSpace(c.CMS.MoviesCollectionID)
	c.CMS.GenresCollectionID = strings.TrimSpace(c.CMS.GenresCollectionID)
	if c.CMS.RequestTimeout <= 0 {
		c.CMS.RequestTimeout = defaultCMSTimeout
	}
}

func (c *Config) normalizeSync() {
	if c.Sync.Pages <= 0 {
		c.Sync.Pages = defaultSyncPages
	}
	if c.Sync.MaxConcurrent <= 0 {
		c.Sync.MaxConcurrent = defaultSyncConcurrency
	}
	if c.Sync.MinIntervalMS <= 0 {
		c.Sync.MinIntervalMS = defaultSyncIntervalMS
	}
	if c.Sync.QueueSize <= 0 {
		c.Sync.QueueSize = defaultSyncQueueSize
	}
}

func (c *Config) normalizeMedia() {
	c.Media.BackdropBaseURL = strings.TrimSpace(c.Media.BackdropBaseURL)
	if c.Media.BackdropBaseURL == "" {
		c.Media.BackdropBaseURL = defaultBackdropBaseURL
	}
	c.Media.PosterBaseURL = strings.TrimSpace(c.Media.PosterBaseURL)
	if c.Media.PosterBaseURL == "" {
		c.Media.PosterBaseURL = defaultPosterBaseURL
	}
	c.Media.TrailerBaseURL = strings.TrimSpace(c.Media.TrailerBaseURL)
	if c.Media.TrailerBaseURL == "" {
		c.Media.TrailerBaseURL = defaultTrailerBaseURL
	}
}

func (c *Config) normalizeGenres() error {
	if strings.TrimSpace(c.Genres.MappingPath) == "" {
		c.Genres.MappingPath = defaultGenreMappingPath
	}
	expanded, err := expandPath(c.Genres.MappingPath)
	if err != nil {
		return fmt.Errorf("genres.mapping_path: %w", err)
	}
	c.Genres.MappingPath = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}
