package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/domain"
	"github.com/streamforge/media-access-service/internal/ports"
)

// SaveProgress records a playback position. No prior read happens here: the
// repository merges atomically (position via GREATEST, completed via OR), so
// retries and out-of-order beacons cannot regress stored progress.
func (s *Service) SaveProgress(ctx context.Context, req SaveProgressRequest) error {
	if req.PositionSeconds < 0 {
		return fmt.Errorf("%w: position_seconds must not be negative", domain.ErrInvalidInput)
	}
	if req.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration_seconds must be positive", domain.ErrInvalidInput)
	}

	completed := req.Completed || domain.AutoCompleted(req.PositionSeconds, req.DurationSeconds)

	err := s.progress.Upsert(ctx, ports.ProgressUpsertParams{
		UserID:          req.UserID,
		ContentID:       req.ContentID,
		PositionSeconds: req.PositionSeconds,
		DurationSeconds: req.DurationSeconds,
		Completed:       completed,
		UpdatedAt:       s.nowFn(),
	})
	if err != nil {
		return s.classify("save progress", req.UserID, req.ContentID, err)
	}
	return nil
}

// GetProgress returns nil when the user never started the content.
func (s *Service) GetProgress(ctx context.Context, userID, contentID uuid.UUID) (*ProgressSnapshot, error) {
	p, err := s.progress.Get(ctx, userID, contentID)
	if err != nil {
		return nil, s.classify("get progress", userID, contentID, err)
	}
	if p == nil {
		return nil, nil
	}
	return &ProgressSnapshot{
		ContentID:       p.ContentID,
		PositionSeconds: p.PositionSeconds,
		DurationSeconds: p.DurationSeconds,
		PercentComplete: p.PercentComplete(),
		Completed:       p.Completed,
		UpdatedAt:       p.UpdatedAt,
	}, nil
}
