package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/domain"
	"github.com/streamforge/media-access-service/internal/ports"
)

// GetStreamingURL authorizes playback and returns a time-limited URL.
// All verification reads run inside one read-committed, read-only
// transaction; the signer is called only after that transaction exits.
func (s *Service) GetStreamingURL(ctx context.Context, userID, contentID uuid.UUID, expirySeconds int64) (domain.StreamingGrant, error) {
	expiry, err := s.normalizeExpiry(expirySeconds)
	if err != nil {
		return domain.StreamingGrant{}, err
	}

	var (
		decision   domain.AccessDecision
		mediaType  domain.MediaType
		manifest   string
		priceCents int64
	)
	err = s.streaming.ReadForStreaming(ctx, func(reads ports.StreamingReadSet) error {
		content, media, readErr := reads.ContentForStreaming(ctx, contentID)
		if readErr != nil {
			return readErr
		}
		priceCents = content.PriceCents

		decision, readErr = s.resolveAccess(ctx, reads, userID, content)
		if readErr != nil {
			return readErr
		}
		if !decision.Granted {
			return &domain.AccessDeniedError{
				UserID:         userID,
				ContentID:      contentID,
				PriceCents:     content.PriceCents,
				OrganizationID: content.OrganizationID,
			}
		}

		if !media.Ready() {
			return &domain.MediaNotReadyError{ContentID: contentID, Status: media.Status}
		}
		if media.ManifestKey == nil || *media.ManifestKey == "" {
			// The pipeline guarantees ready rows carry a key; treat a gap as
			// a signing-side invariant violation rather than "not found".
			return fmt.Errorf("%w: ready media for content %s has no manifest key", domain.ErrSigning, contentID)
		}
		if !domain.ValidMediaType(media.MediaType) {
			return fmt.Errorf("unexpected media type %q for content %s", media.MediaType, contentID)
		}

		mediaType = media.MediaType
		manifest = *media.ManifestKey
		return nil
	})
	if err != nil {
		s.auditStreamFailure(userID, contentID, priceCents, err)
		return domain.StreamingGrant{}, s.classify("get streaming url", userID, contentID, err)
	}

	url, err := s.signer.Sign(ctx, manifest, expiry)
	if err != nil {
		// Signer failures are not retried here; transient network issues are
		// the signer's concern.
		return domain.StreamingGrant{}, fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}

	s.audit().InfoContext(ctx, "streaming granted",
		"user_id", userID,
		"content_id", contentID,
		"reason", decision.Reason,
		"member_role", decision.MemberRole,
		"expiry_seconds", int64(expiry.Seconds()),
	)

	return domain.StreamingGrant{
		URL:       url,
		ExpiresAt: s.nowFn().Add(expiry),
		MediaType: mediaType,
	}, nil
}

// CheckAccess runs the grant resolver alone, for internal callers that need
// the decision without a playable URL. Readiness is not consulted.
func (s *Service) CheckAccess(ctx context.Context, userID, contentID uuid.UUID) (AccessCheckResult, error) {
	var decision domain.AccessDecision
	err := s.streaming.ReadForStreaming(ctx, func(reads ports.StreamingReadSet) error {
		content, _, readErr := reads.ContentForStreaming(ctx, contentID)
		if readErr != nil {
			return readErr
		}
		decision, readErr = s.resolveAccess(ctx, reads, userID, content)
		return readErr
	})
	if err != nil {
		return AccessCheckResult{}, s.classify("check access", userID, contentID, err)
	}
	if !decision.Granted {
		s.audit().WarnContext(ctx, "access check denied", "user_id", userID, "content_id", contentID)
		return AccessCheckResult{Granted: false}, nil
	}
	return AccessCheckResult{Granted: true, Reason: decision.Reason}, nil
}

// resolveAccess is the grant chain: free content, then a direct purchase
// grant, then active membership in the owning organization. Purchase is
// checked before membership because a direct purchase is the stronger,
// content-specific grant and skips the extra lookup.
func (s *Service) resolveAccess(ctx context.Context, reads ports.StreamingReadSet, userID uuid.UUID, content domain.Content) (domain.AccessDecision, error) {
	if content.Free() {
		return domain.AccessDecision{Granted: true, Reason: domain.AccessReasonFree}, nil
	}

	purchased, err := reads.HasPurchaseGrant(ctx, userID, content.ContentID)
	if err != nil {
		return domain.AccessDecision{}, fmt.Errorf("lookup purchase grant: %w", err)
	}
	if purchased {
		return domain.AccessDecision{Granted: true, Reason: domain.AccessReasonPurchased}, nil
	}

	// Paid personal content requires a direct purchase; the membership
	// fallback only applies to organization-owned content.
	if content.Personal() {
		return domain.AccessDecision{Granted: false}, nil
	}

	role, found, err := reads.ActiveMembershipRole(ctx, *content.OrganizationID, userID)
	if err != nil {
		return domain.AccessDecision{}, fmt.Errorf("lookup org membership: %w", err)
	}
	if !found {
		return domain.AccessDecision{Granted: false}, nil
	}
	return domain.AccessDecision{Granted: true, Reason: domain.AccessReasonOrgMember, MemberRole: role}, nil
}

func (s *Service) normalizeExpiry(expirySeconds int64) (time.Duration, error) {
	if expirySeconds == 0 {
		return s.cfg.DefaultStreamExpiry, nil
	}
	expiry := time.Duration(expirySeconds) * time.Second
	if expiry < MinStreamExpiry || expiry > MaxStreamExpiry {
		return 0, fmt.Errorf("%w: expiry_seconds must be between %d and %d",
			domain.ErrInvalidInput, int64(MinStreamExpiry.Seconds()), int64(MaxStreamExpiry.Seconds()))
	}
	return expiry, nil
}

// classify propagates domain errors unchanged and wraps everything else once
// with request context so no raw storage detail reaches the caller unlogged.
func (s *Service) classify(op string, userID, contentID uuid.UUID, err error) error {
	switch {
	case errors.Is(err, domain.ErrContentNotFound),
		errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrMediaNotReady),
		errors.Is(err, domain.ErrSigning),
		errors.Is(err, domain.ErrInvalidInput):
		return err
	default:
		s.logger.Error(op+" failed", "user_id", userID, "content_id", contentID, "error", err)
		return fmt.Errorf("%s (user=%s content=%s): %w", op, userID, contentID, err)
	}
}

func (s *Service) auditStreamFailure(userID, contentID uuid.UUID, priceCents int64, err error) {
	var denied *domain.AccessDeniedError
	switch {
	case errors.As(err, &denied):
		fields := []any{
			"user_id", userID,
			"content_id", contentID,
			"reason", "access_denied",
			"price_cents", denied.PriceCents,
		}
		if denied.OrganizationID != nil {
			fields = append(fields, "organization_id", *denied.OrganizationID)
		}
		s.audit().Warn("streaming denied", fields...)
	case errors.Is(err, domain.ErrContentNotFound):
		s.audit().Warn("streaming denied", "user_id", userID, "content_id", contentID, "reason", "content_not_found")
	case errors.Is(err, domain.ErrMediaNotReady):
		s.audit().Warn("streaming denied", "user_id", userID, "content_id", contentID, "reason", "media_not_ready", "price_cents", priceCents)
	}
}
