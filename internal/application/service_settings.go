package application

import (
	"context"
	"fmt"
)

// PlayerSettings serves platform branding/player defaults through the cache.
// Cache errors degrade to a direct read; the TTL lives in the cache object.
func (s *Service) PlayerSettings(ctx context.Context) (map[string]any, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx); err == nil && ok {
			return cached, nil
		}
	}

	settings, err := s.settings.GetPlayerSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load player settings: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, settings); err != nil {
			s.logger.Warn("player settings cache put failed", "error", err)
		}
	}
	return settings, nil
}

// InvalidatePlayerSettings is the explicit invalidation hook for the
// settings cache.
func (s *Service) InvalidatePlayerSettings(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}
