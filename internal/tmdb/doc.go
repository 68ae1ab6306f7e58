// Package tmdb provides the client for The Movie Database API.
//
// The pipeline consumes three endpoints: the paginated popular-movies
// listing, the per-movie detail lookup with embedded video metadata, and the
// movie genre taxonomy (bootstrap only). The Catalog interface captures the
// operations the sync pipeline needs so tests can substitute fakes.
package tmdb
