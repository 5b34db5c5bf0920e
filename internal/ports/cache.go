package ports

import "context"

// SettingsCache is an explicit cache object for player/branding settings.
// TTL is injected at construction and invalidation is an explicit hook owned
// by the wiring context, not a process-wide singleton.
type SettingsCache interface {
	// Get returns ok=false on a miss; cache errors degrade to a miss.
	Get(ctx context.Context) (map[string]any, bool, error)
	Put(ctx context.Context, settings map[string]any) error
	Invalidate(ctx context.Context) error
}
