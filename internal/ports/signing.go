package ports

import (
	"context"
	"time"
)

// URLSigner produces a time-limited playable URL for an opaque storage key.
// The signer is an external collaborator; this service decides whether to
// call it and with which key, and does not retry transient failures.
type URLSigner interface {
	Sign(ctx context.Context, key string, expiry time.Duration) (string, error)
}
