package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/domain"
)

// StreamingReadSet bundles the verification reads of one streaming decision.
// An implementation scopes every call to a single transaction so all rows
// observed in one decision come from one consistent snapshot.
type StreamingReadSet interface {
	// ContentForStreaming loads a published, non-deleted content row together
	// with its media attachment. It returns domain.ErrContentNotFound both
	// when the row is missing and when no media is attached.
	ContentForStreaming(ctx context.Context, contentID uuid.UUID) (domain.Content, domain.MediaAsset, error)
	// HasPurchaseGrant checks for a content_access row with the purchased
	// access type. Existence is a positive signal with no expiry.
	HasPurchaseGrant(ctx context.Context, userID, contentID uuid.UUID) (bool, error)
	// ActiveMembershipRole returns the role of an active membership in the
	// given organization, or found=false when there is none.
	ActiveMembershipRole(ctx context.Context, orgID, userID uuid.UUID) (role string, found bool, err error)
}

// StreamingReader runs the verification reads inside one read-committed,
// read-only transaction. The signer call never happens inside fn: a slow
// signer must not hold a database transaction open.
type StreamingReader interface {
	ReadForStreaming(ctx context.Context, fn func(reads StreamingReadSet) error) error
}

// ProgressUpsertParams is the fully-computed incoming progress row. The
// completed flag already includes the auto-completion rule; the storage
// merge only strengthens it further.
type ProgressUpsertParams struct {
	UserID          uuid.UUID
	ContentID       uuid.UUID
	PositionSeconds int64
	DurationSeconds int64
	Completed       bool
	UpdatedAt       time.Time
}

// ProgressRepository owns the playback_progress table, the only state this
// service mutates. Upsert must be a single atomic statement merging with
// GREATEST/OR semantics; a read-then-write implementation loses updates
// under concurrent savers of the same (user, content) key.
type ProgressRepository interface {
	Upsert(ctx context.Context, params ProgressUpsertParams) error
	// Get returns nil when the user never started the content.
	Get(ctx context.Context, userID, contentID uuid.UUID) (*domain.PlaybackProgress, error)
	// GetBatch fetches progress for a content-id set in one query.
	GetBatch(ctx context.Context, userID uuid.UUID, contentIDs []uuid.UUID) (map[uuid.UUID]domain.PlaybackProgress, error)
}

// PurchaseRepository reads the payment-owned purchases table for the library.
// It is intentionally separate from the content_access grants the resolver
// reads; the two tables are reconciled (or not) by the payment subsystem.
type PurchaseRepository interface {
	// ListCompleted returns completed purchases joined with content, ordered
	// by purchase date descending. Callers pass limit+1 to detect more rows.
	ListCompleted(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.PurchasedContent, error)
}

// SettingsRepository reads platform-owned player/branding settings.
type SettingsRepository interface {
	GetPlayerSettings(ctx context.Context) (map[string]any, error)
}
