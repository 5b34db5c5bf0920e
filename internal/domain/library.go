package domain

import (
	"time"

	"github.com/google/uuid"
)

type LibraryFilter string

const (
	LibraryFilterAll        LibraryFilter = "all"
	LibraryFilterInProgress LibraryFilter = "in-progress"
	LibraryFilterCompleted  LibraryFilter = "completed"
)

// ValidLibraryFilter reports whether f is one of the closed filter values.
func ValidLibraryFilter(f LibraryFilter) bool {
	return f == LibraryFilterAll || f == LibraryFilterInProgress || f == LibraryFilterCompleted
}

type LibrarySort string

const (
	LibrarySortRecent   LibrarySort = "recent"
	LibrarySortTitle    LibrarySort = "title"
	LibrarySortDuration LibrarySort = "duration"
)

// ValidLibrarySort reports whether s is one of the closed sort values.
func ValidLibrarySort(s LibrarySort) bool {
	return s == LibrarySortRecent || s == LibrarySortTitle || s == LibrarySortDuration
}

// PurchasedContent is a completed purchase joined with the content it bought.
// It is read from the purchases table, which the payment subsystem owns and
// which is deliberately distinct from the content_access grant table.
type PurchasedContent struct {
	ContentID       uuid.UUID
	Title           string
	MediaType       MediaType
	DurationSeconds int64
	AmountPaidCents int64
	PurchasedAt     time.Time
}

// LibraryItem is one row of a user's library: the purchase, plus progress
// when the user has started the content.
type LibraryItem struct {
	Content         PurchasedContent
	Progress        *PlaybackProgress
	PercentComplete int
}

// Started reports whether any progress row exists. Items without one are
// excluded from both the in-progress and completed filters.
func (i LibraryItem) Started() bool { return i.Progress != nil }

func (i LibraryItem) Completed() bool { return i.Progress != nil && i.Progress.Completed }

// Pagination describes one library page. Total counts the filtered items of
// the fetched page only, not the whole library; HasMore comes from fetching
// limit+1 rows of the unfiltered purchase window.
type Pagination struct {
	Page    int
	Limit   int
	Total   int
	HasMore bool
}
