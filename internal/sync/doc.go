// Package sync drives the catalog-to-CMS movie pipeline.
//
// A run walks the source listing pages in order, feeds each movie through a
// bounded work queue into a fixed worker pool, and writes one CMS item per
// qualifying movie. Worker starts are paced by a shared rate limiter so the
// pipeline stays under the sink API's request ceiling regardless of how fast
// pages arrive. Every movie's outcome is recorded in the journal, which later
// runs consult to avoid recreating items.
package sync
