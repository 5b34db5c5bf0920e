package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/domain"
)

type SaveProgressRequest struct {
	UserID          uuid.UUID
	ContentID       uuid.UUID
	PositionSeconds int64
	DurationSeconds int64
	Completed       bool
}

// ProgressSnapshot is the caller-facing view of a progress row.
type ProgressSnapshot struct {
	ContentID       uuid.UUID `json:"content_id"`
	PositionSeconds int64     `json:"position_seconds"`
	DurationSeconds int64     `json:"duration_seconds"`
	PercentComplete int       `json:"percent_complete"`
	Completed       bool      `json:"completed"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type LibraryQuery struct {
	Page   int
	Limit  int
	Filter domain.LibraryFilter
	SortBy domain.LibrarySort
}

type LibraryItemView struct {
	ContentID       uuid.UUID `json:"content_id"`
	Title           string    `json:"title"`
	MediaType       string    `json:"media_type"`
	DurationSeconds int64     `json:"duration_seconds"`
	AmountPaidCents int64     `json:"amount_paid_cents"`
	PurchasedAt     time.Time `json:"purchased_at"`
	PositionSeconds int64     `json:"position_seconds"`
	PercentComplete int       `json:"percent_complete"`
	Completed       bool      `json:"completed"`
	Started         bool      `json:"started"`
}

type LibraryPage struct {
	Items      []LibraryItemView `json:"items"`
	Pagination PaginationView    `json:"pagination"`
}

type PaginationView struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// AccessCheckResult is the resolver outcome exposed to internal callers.
type AccessCheckResult struct {
	Granted bool
	Reason  domain.AccessReason
}
