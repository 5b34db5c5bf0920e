package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/application"
	"github.com/streamforge/media-access-service/internal/domain"
)

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}

		claims, err := h.verifier.Verify(r.Context(), raw)
		if err != nil {
			status, code, msg := mapDomainError(err)
			writeError(w, status, code, msg)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) getStreamingURL(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingClaimsError(r.Context(), w, "get_streaming_url")
		return
	}
	contentID, err := uuid.Parse(chi.URLParam(r, "content_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "get_streaming_url", errors.New("invalid content_id"))
		return
	}
	expiry := int64(parseIntDefault(r.URL.Query().Get("expiry_seconds"), 0))

	grant, err := h.service.GetStreamingURL(r.Context(), claims.UserID, contentID, expiry)
	if err != nil {
		writeMappedError(r.Context(), w, "get_streaming_url", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"streaming_url": grant.URL,
		"expires_at":    grant.ExpiresAt,
		"media_type":    grant.MediaType,
	})
}

type saveProgressBody struct {
	PositionSeconds int64 `json:"position_seconds"`
	DurationSeconds int64 `json:"duration_seconds"`
	Completed       bool  `json:"completed"`
}

func (h *Handler) saveProgress(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingClaimsError(r.Context(), w, "save_progress")
		return
	}
	contentID, err := uuid.Parse(chi.URLParam(r, "content_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "save_progress", errors.New("invalid content_id"))
		return
	}
	var body saveProgressBody
	if err := decodeBody(r, &body); err != nil {
		writeValidationError(r.Context(), w, "save_progress", err)
		return
	}

	req := application.SaveProgressRequest{
		UserID:          claims.UserID,
		ContentID:       contentID,
		PositionSeconds: body.PositionSeconds,
		DurationSeconds: body.DurationSeconds,
		Completed:       body.Completed,
	}
	if err := h.service.SaveProgress(r.Context(), req); err != nil {
		writeMappedError(r.Context(), w, "save_progress", err)
		return
	}
	writeMessage(w, http.StatusOK, "Progress saved")
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingClaimsError(r.Context(), w, "get_progress")
		return
	}
	contentID, err := uuid.Parse(chi.URLParam(r, "content_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "get_progress", errors.New("invalid content_id"))
		return
	}

	snapshot, err := h.service.GetProgress(r.Context(), claims.UserID, contentID)
	if err != nil {
		writeMappedError(r.Context(), w, "get_progress", err)
		return
	}
	if snapshot == nil {
		writeSuccess(w, http.StatusOK, map[string]any{"progress": nil})
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"progress": snapshot})
}

func (h *Handler) listLibrary(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingClaimsError(r.Context(), w, "list_library")
		return
	}

	query := application.LibraryQuery{
		Page:   parseIntDefault(r.URL.Query().Get("page"), 1),
		Limit:  parseIntDefault(r.URL.Query().Get("limit"), 0),
		Filter: domain.LibraryFilter(r.URL.Query().Get("filter")),
		SortBy: domain.LibrarySort(r.URL.Query().Get("sort_by")),
	}
	page, err := h.service.ListLibrary(r.Context(), claims.UserID, query)
	if err != nil {
		writeMappedError(r.Context(), w, "list_library", err)
		return
	}
	writeSuccess(w, http.StatusOK, page)
}

func (h *Handler) playerSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.PlayerSettings(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "player_settings", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"player_settings": settings})
}

func (h *Handler) invalidatePlayerSettings(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingClaimsError(r.Context(), w, "invalidate_player_settings")
		return
	}
	if claims.Role != "admin" {
		writeError(w, http.StatusForbidden, "ACCESS_DENIED", "admin role required")
		return
	}
	if err := h.service.InvalidatePlayerSettings(r.Context()); err != nil {
		writeMappedError(r.Context(), w, "invalidate_player_settings", err)
		return
	}
	writeMessage(w, http.StatusOK, "Player settings cache invalidated")
}
