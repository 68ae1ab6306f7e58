// Package journal persists per-movie sync outcomes in SQLite.
//
// The Store records one row per source movie id with its terminal outcome
// (created, skipped, or failed), the reason, and the CMS item id when one was
// created. Reruns consult the journal to skip movies that already produced an
// item, and 'cinesync retry' clears failed rows so the next run reprocesses
// them. The database is a checkpoint, not an archive; schema changes bump the
// version in schema.go and users clear the database to adopt the new schema.
package journal
