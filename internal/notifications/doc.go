// Package notifications sends push notifications for sync lifecycle events.
//
// The service is backed by ntfy when a topic is configured and degrades to a
// noop otherwise, so callers never branch on whether notifications are
// enabled.
package notifications
