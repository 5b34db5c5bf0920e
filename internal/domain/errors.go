package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrContentNotFound covers absent, unpublished and soft-deleted content as
	// well as content with no media attached. It is safe to surface verbatim:
	// the caller learns nothing beyond "this content is unavailable".
	ErrContentNotFound = errors.New("content not found")
	// ErrAccessDenied signals the grant chain denied streaming. The denial
	// detail (price, organization) stays in audit logs and must never be
	// echoed to the denied user.
	ErrAccessDenied = errors.New("access denied")
	// ErrMediaNotReady means the content is accessible but the media pipeline
	// has not produced a playable artifact yet.
	ErrMediaNotReady = errors.New("media not ready")
	// ErrSigning covers external signer failures and the defensive case of a
	// ready media record carrying no streaming key.
	ErrSigning      = errors.New("signing failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
)

// AccessDeniedError carries the audit detail of a denial. Handlers match it
// with errors.Is(err, ErrAccessDenied); only audit loggers read the fields.
type AccessDeniedError struct {
	UserID         uuid.UUID
	ContentID      uuid.UUID
	PriceCents     int64
	OrganizationID *uuid.UUID
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied for content %s", e.ContentID)
}

func (e *AccessDeniedError) Unwrap() error { return ErrAccessDenied }

// MediaNotReadyError carries the current pipeline status so callers can show
// a "processing" state.
type MediaNotReadyError struct {
	ContentID uuid.UUID
	Status    MediaStatus
}

func (e *MediaNotReadyError) Error() string {
	return fmt.Sprintf("media for content %s not ready (status %s)", e.ContentID, e.Status)
}

func (e *MediaNotReadyError) Unwrap() error { return ErrMediaNotReady }
