// Package logging builds the slog loggers used across cinesync.
//
// Two output formats are supported: a compact console format for interactive
// runs and JSON for machine consumption. Components attach a standardized
// component attribute through NewComponentLogger so every log line names the
// subsystem that produced it. The file log under paths.log_dir receives the
// same records as stdout.
package logging
