package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompletionThresholdPercent is the business rule for auto-completion: a
// save at or beyond 95% of the duration marks the content completed.
const CompletionThresholdPercent = 95

// PlaybackProgress is the per-user, per-content playback position. Rows are
// created on first save and never deleted; Position never regresses and
// Completed never reverts to false (the storage merge enforces both).
type PlaybackProgress struct {
	UserID          uuid.UUID
	ContentID       uuid.UUID
	PositionSeconds int64
	DurationSeconds int64
	Completed       bool
	UpdatedAt       time.Time
}

// PercentComplete is rounded to the nearest integer percent.
func (p PlaybackProgress) PercentComplete() int {
	if p.DurationSeconds <= 0 {
		return 0
	}
	return int((p.PositionSeconds*100 + p.DurationSeconds/2) / p.DurationSeconds)
}

// AutoCompleted applies the 95% rule with integer arithmetic so the boundary
// (94/100 stays open, 95/100 completes) is exact.
func AutoCompleted(positionSeconds, durationSeconds int64) bool {
	if durationSeconds <= 0 {
		return false
	}
	return positionSeconds*100 >= durationSeconds*CompletionThresholdPercent
}
