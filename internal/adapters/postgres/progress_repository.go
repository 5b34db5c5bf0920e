package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/domain"
	"github.com/streamforge/media-access-service/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type progressRepository struct {
	db *gorm.DB
}

// Upsert merges progress in one statement so concurrent savers of the same
// (user, content) key cannot lose updates: position only ever grows,
// completed only ever strengthens, duration is last-write-wins.
func (r *progressRepository) Upsert(ctx context.Context, params ports.ProgressUpsertParams) error {
	rec := playbackProgressModel{
		UserID:          params.UserID,
		ContentID:       params.ContentID,
		PositionSeconds: params.PositionSeconds,
		DurationSeconds: params.DurationSeconds,
		Completed:       params.Completed,
		UpdatedAt:       params.UpdatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"position_seconds": gorm.Expr("GREATEST(playback_progress.position_seconds, EXCLUDED.position_seconds)"),
			"completed":        gorm.Expr("playback_progress.completed OR EXCLUDED.completed"),
			"duration_seconds": gorm.Expr("EXCLUDED.duration_seconds"),
			"updated_at":       gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(&rec).Error
}

func (r *progressRepository) Get(ctx context.Context, userID, contentID uuid.UUID) (*domain.PlaybackProgress, error) {
	var rec playbackProgressModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	p := toDomainProgress(rec)
	return &p, nil
}

func (r *progressRepository) GetBatch(ctx context.Context, userID uuid.UUID, contentIDs []uuid.UUID) (map[uuid.UUID]domain.PlaybackProgress, error) {
	result := make(map[uuid.UUID]domain.PlaybackProgress, len(contentIDs))
	if len(contentIDs) == 0 {
		return result, nil
	}
	var rows []playbackProgressModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rec := range rows {
		result[rec.ContentID] = toDomainProgress(rec)
	}
	return result, nil
}
