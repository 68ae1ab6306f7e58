// Package cms provides the client for the destination content-management API.
//
// The pipeline only creates collection items; there is no update or delete
// path. CreateItem posts a field set to a collection's item endpoint and
// returns the created item. The Sink interface captures the single operation
// the pipeline needs so tests can substitute fakes.
package cms
