package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/domain"
	"github.com/streamforge/media-access-service/internal/ports"
	"gorm.io/gorm"
)

type streamingRepository struct {
	db *gorm.DB
}

// ReadForStreaming runs fn inside one read-committed, read-only transaction.
// Read-only relaxes lock contention; read-committed is enough because the
// decision needs one consistent snapshot, not serializability.
func (r *streamingRepository) ReadForStreaming(ctx context.Context, fn func(reads ports.StreamingReadSet) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txReadSet{tx: tx})
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true})
}

// txReadSet scopes the verification reads to the surrounding transaction.
type txReadSet struct {
	tx *gorm.DB
}

func (s *txReadSet) ContentForStreaming(ctx context.Context, contentID uuid.UUID) (domain.Content, domain.MediaAsset, error) {
	var content contentModel
	err := s.tx.WithContext(ctx).
		Where("content_id = ? AND status = ? AND deleted_at IS NULL", contentID, string(domain.ContentStatusPublished)).
		Take(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Content{}, domain.MediaAsset{}, domain.ErrContentNotFound
		}
		return domain.Content{}, domain.MediaAsset{}, err
	}

	var media contentMediaModel
	err = s.tx.WithContext(ctx).
		Where("content_id = ?", contentID).
		Take(&media).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Content without media is indistinguishable from absent content
			// to the caller.
			return domain.Content{}, domain.MediaAsset{}, domain.ErrContentNotFound
		}
		return domain.Content{}, domain.MediaAsset{}, err
	}

	return toDomainContent(content), toDomainMedia(media), nil
}

func (s *txReadSet) HasPurchaseGrant(ctx context.Context, userID, contentID uuid.UUID) (bool, error) {
	var count int64
	err := s.tx.WithContext(ctx).
		Model(&contentAccessModel{}).
		Where("user_id = ? AND content_id = ? AND access_type = ?", userID, contentID, "purchased").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *txReadSet) ActiveMembershipRole(ctx context.Context, orgID, userID uuid.UUID) (string, bool, error) {
	var member organizationMemberModel
	err := s.tx.WithContext(ctx).
		Where("organization_id = ? AND user_id = ? AND status = ?", orgID, userID, "active").
		Take(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return member.Role, true, nil
}
