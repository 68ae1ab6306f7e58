// Package genres holds the static mapping from TMDB genre identifiers to CMS
// item references.
//
// The mapping is loaded once from a TOML file at pipeline construction and is
// read-only for the process lifetime. Resolve translates a record's ordered
// genre ids into destination references, dropping ids without a mapping
// entry. The file is produced by 'cinesync genres seed'.
package genres
