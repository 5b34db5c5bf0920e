package signing

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// LocalSigner is the dev/test fallback when no S3 store is configured. It
// issues HMAC-authenticated URLs against a local media gateway; runtimes
// only reach it when the local-signer escape hatch is explicitly enabled.
type LocalSigner struct {
	baseURL string
	secret  []byte
	nowFn   func() time.Time
}

func NewLocalSigner(baseURL string, secret []byte) (*LocalSigner, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("missing local signer base url")
	}
	if len(secret) == 0 {
		// Ephemeral secret: fine for dev, URLs stop verifying on restart.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate ephemeral signing secret: %w", err)
		}
	}
	return &LocalSigner{
		baseURL: baseURL,
		secret:  secret,
		nowFn:   func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *LocalSigner) Sign(_ context.Context, key string, expiry time.Duration) (string, error) {
	expires := s.nowFn().Add(expiry).Unix()
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", key, expires)
	sig := hex.EncodeToString(mac.Sum(nil))

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", sig)
	return fmt.Sprintf("%s/%s?%s", s.baseURL, url.PathEscape(key), q.Encode()), nil
}

// Verify checks a URL produced by Sign; the local media gateway uses it.
func (s *LocalSigner) Verify(key string, expires int64, signature string) bool {
	if s.nowFn().Unix() > expires {
		return false
	}
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", key, expires)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
