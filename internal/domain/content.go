package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
)

type MediaType string

const (
	MediaTypeVideo MediaType = "video"
	MediaTypeAudio MediaType = "audio"
)

// ValidMediaType guards against unexpected values reaching the signer even
// though the column is constrained upstream.
func ValidMediaType(t MediaType) bool {
	return t == MediaTypeVideo || t == MediaTypeAudio
}

type MediaStatus string

const (
	MediaStatusPending    MediaStatus = "pending"
	MediaStatusProcessing MediaStatus = "processing"
	MediaStatusReady      MediaStatus = "ready"
	MediaStatusFailed     MediaStatus = "failed"
)

// Content is the streaming-eligibility view of a content record. Only
// published, non-deleted rows are ever loaded into this type by the
// streaming read set.
type Content struct {
	ContentID       uuid.UUID
	OrganizationID  *uuid.UUID
	Title           string
	Status          ContentStatus
	PriceCents      int64
	DurationSeconds int64
	DeletedAt       *time.Time
	CreatedAt       time.Time
}

// Free reports whether the content requires no grant at all.
func (c Content) Free() bool { return c.PriceCents == 0 }

// Personal reports whether the content has no owning organization, which
// makes the membership fallback inapplicable.
func (c Content) Personal() bool { return c.OrganizationID == nil }

// MediaAsset is the 1:1 media attachment of a content record. ManifestKey is
// the HLS manifest object key; it is only trusted when Status is ready, and
// the upstream pipeline guarantees a ready row carries a non-empty key.
type MediaAsset struct {
	ContentID   uuid.UUID
	MediaType   MediaType
	Status      MediaStatus
	ManifestKey *string
	UpdatedAt   time.Time
}

func (m MediaAsset) Ready() bool { return m.Status == MediaStatusReady }

// AccessReason classifies why a grant was issued.
type AccessReason string

const (
	AccessReasonFree      AccessReason = "free"
	AccessReasonPurchased AccessReason = "purchased"
	AccessReasonOrgMember AccessReason = "org_member"
)

// AccessDecision is the grant resolver outcome. MemberRole is populated only
// for org_member grants, for audit logging.
type AccessDecision struct {
	Granted    bool
	Reason     AccessReason
	MemberRole string
}

// StreamingGrant is the successful streaming authorization result.
type StreamingGrant struct {
	URL       string
	ExpiresAt time.Time
	MediaType MediaType
}
