package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "content not found",
			err:        domain.ErrContentNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "CONTENT_NOT_FOUND",
		},
		{
			name: "access denied carrier",
			err: &domain.AccessDeniedError{
				UserID:         uuid.New(),
				ContentID:      uuid.New(),
				PriceCents:     1999,
				OrganizationID: &orgID,
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "ACCESS_DENIED",
		},
		{
			name:       "media not ready carrier",
			err:        &domain.MediaNotReadyError{ContentID: uuid.New(), Status: domain.MediaStatusProcessing},
			wantStatus: http.StatusConflict,
			wantCode:   "MEDIA_NOT_READY",
		},
		{
			name:       "signing failure",
			err:        fmt.Errorf("%w: presign timed out", domain.ErrSigning),
			wantStatus: http.StatusBadGateway,
			wantCode:   "SIGNING_ERROR",
		},
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: expiry_seconds must be between 300 and 86400", domain.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "unauthorized",
			err:        domain.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "unknown error",
			err:        errors.New("db connection lost"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			status, code, _ := mapDomainError(tc.err)
			if status != tc.wantStatus || code != tc.wantCode {
				t.Fatalf("got (%d, %s), want (%d, %s)", status, code, tc.wantStatus, tc.wantCode)
			}
		})
	}
}

func TestMediaNotReadyMessageCarriesStatus(t *testing.T) {
	t.Parallel()

	err := &domain.MediaNotReadyError{ContentID: uuid.New(), Status: domain.MediaStatusProcessing}
	_, _, msg := mapDomainError(err)
	if msg != "media is not ready for playback (status: processing)" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestAccessDeniedMessageStaysGeneric(t *testing.T) {
	t.Parallel()

	err := &domain.AccessDeniedError{UserID: uuid.New(), ContentID: uuid.New(), PriceCents: 4999}
	_, _, msg := mapDomainError(err)
	if msg != "access to this content is denied" {
		t.Fatalf("denial message must not leak grant details, got %s", msg)
	}
}

func TestBearerTokenFromHeader(t *testing.T) {
	t.Parallel()

	if _, err := bearerTokenFromHeader(""); err == nil {
		t.Fatalf("empty header should be rejected")
	}
	if _, err := bearerTokenFromHeader("Basic abc"); err == nil {
		t.Fatalf("non-bearer scheme should be rejected")
	}
	if _, err := bearerTokenFromHeader("Bearer "); err == nil {
		t.Fatalf("empty token should be rejected")
	}
	token, err := bearerTokenFromHeader("Bearer abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("expected token extracted, got %q err=%v", token, err)
	}
}
