package config

const (
	defaultStateDir         = "~/.local/share/cinesync"
	defaultLogDir           = "~/.local/share/cinesync/logs"
	defaultTMDBBaseURL      = "https://api.themoviedb.org/3"
	defaultTMDBLanguage     = "en-US"
	defaultCMSBaseURL       = "https://api.webflow.com"
	defaultCMSTimeout       = 15
	defaultSyncPages        = 5
	defaultSyncConcurrency  = 2
	defaultSyncIntervalMS   = 1000
	defaultSyncQueueSize    = 40
	defaultBackdropBaseURL  = "https://image.tmdb.org/t/p/original"
	defaultPosterBaseURL    = "https://image.tmdb.org/t/p/w500"
	defaultTrailerBaseURL   = "https://www.youtube.com/watch?v="
	defaultGenreMappingPath = "~/.config/cinesync/genres.toml"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultNtfyTimeout      = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		CMS: CMS{
			BaseURL:        defaultCMSBaseURL,
			RequestTimeout: defaultCMSTimeout,
		},
		Sync: Sync{
			Pages:         defaultSyncPages,
			MaxConcurrent: defaultSyncConcurrency,
			MinIntervalMS: defaultSyncIntervalMS,
			QueueSize:     defaultSyncQueueSize,
		},
		Media: Media{
			BackdropBaseURL: defaultBackdropBaseURL,
			PosterBaseURL:   defaultPosterBaseURL,
			TrailerBaseURL:  defaultTrailerBaseURL,
		},
		Genres: Genres{
			MappingPath: defaultGenreMappingPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
	}
}
