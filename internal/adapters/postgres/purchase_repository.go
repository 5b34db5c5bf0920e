package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/domain"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// ListCompleted pages completed purchases joined with content, newest first.
// The join keeps soft-deleted content out of the library.
func (r *purchaseRepository) ListCompleted(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.PurchasedContent, error) {
	var records []struct {
		purchaseModel
		Title           string `gorm:"column:title"`
		MediaType       string `gorm:"column:media_type"`
		DurationSeconds int64  `gorm:"column:duration_seconds"`
	}
	err := r.db.WithContext(ctx).
		Table("purchases").
		Select("purchases.content_id, purchases.amount_paid_cents, purchases.created_at, content.title, content.duration_seconds, content_media.media_type").
		Joins("JOIN content ON content.content_id = purchases.content_id AND content.deleted_at IS NULL").
		Joins("LEFT JOIN content_media ON content_media.content_id = purchases.content_id").
		Where("purchases.customer_id = ? AND purchases.status = ?", userID, "completed").
		Order("purchases.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]domain.PurchasedContent, 0, len(records))
	for _, rec := range records {
		items = append(items, domain.PurchasedContent{
			ContentID:       rec.ContentID,
			Title:           rec.Title,
			MediaType:       domain.MediaType(rec.MediaType),
			DurationSeconds: rec.DurationSeconds,
			AmountPaidCents: rec.AmountPaidCents,
			PurchasedAt:     rec.CreatedAt,
		})
	}
	return items, nil
}
