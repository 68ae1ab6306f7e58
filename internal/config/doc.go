// Package config loads, normalizes, and validates cinesync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY and CMS_API_TOKEN. The Config type centralizes every knob the
// CLI needs, allowing the state directory, external service credentials, and
// pipeline throttling limits to be discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
