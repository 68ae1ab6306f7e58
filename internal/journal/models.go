package journal

import (
	"strings"
	"time"
)

// Status is the terminal outcome recorded for one movie.
type Status string

const (
	// StatusCreated marks a movie whose CMS item was created.
	StatusCreated Status = "created"
	// StatusSkipped marks a movie rejected by a skip condition
	// (missing artwork, no trailer).
	StatusSkipped Status = "skipped"
	// StatusFailed marks a movie whose detail fetch or sink write errored.
	StatusFailed Status = "failed"
)

var allStatuses = []Status{StatusCreated, StatusSkipped, StatusFailed}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Record is one journal row keyed by source movie id.
type Record struct {
	MovieID   int64
	Title     string
	Status    Status
	Reason    string
	ItemID    string
	RunID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
