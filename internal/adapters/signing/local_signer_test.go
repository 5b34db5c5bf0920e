package signing

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestLocalSignerProducesVerifiableURL(t *testing.T) {
	t.Parallel()

	signer, err := NewLocalSigner("http://localhost:8090/local-media", []byte("test-secret"))
	if err != nil {
		t.Fatalf("new local signer: %v", err)
	}

	signed, err := signer.Sign(context.Background(), "media/abc/manifest.m3u8", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if !strings.HasPrefix(signed, "http://localhost:8090/local-media/") {
		t.Fatalf("unexpected base in signed url: %s", signed)
	}

	parsed, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse signed url: %v", err)
	}
	expires, err := strconv.ParseInt(parsed.Query().Get("expires"), 10, 64)
	if err != nil {
		t.Fatalf("parse expires: %v", err)
	}
	signature := parsed.Query().Get("signature")

	if !signer.Verify("media/abc/manifest.m3u8", expires, signature) {
		t.Fatalf("signature should verify for the signed key")
	}
	if signer.Verify("media/other/manifest.m3u8", expires, signature) {
		t.Fatalf("signature must not verify for a different key")
	}
}

func TestLocalSignerRejectsExpiredURL(t *testing.T) {
	t.Parallel()

	signer, err := NewLocalSigner("http://localhost:8090/local-media", []byte("test-secret"))
	if err != nil {
		t.Fatalf("new local signer: %v", err)
	}
	signer.nowFn = func() time.Time { return time.Unix(1_000_000, 0).UTC() }

	signed, err := signer.Sign(context.Background(), "media/abc/manifest.m3u8", time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	parsed, _ := url.Parse(signed)
	expires, _ := strconv.ParseInt(parsed.Query().Get("expires"), 10, 64)
	signature := parsed.Query().Get("signature")

	signer.nowFn = func() time.Time { return time.Unix(1_000_000+120, 0).UTC() }
	if signer.Verify("media/abc/manifest.m3u8", expires, signature) {
		t.Fatalf("expired url must not verify")
	}
}

func TestLocalSignerGeneratesEphemeralSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewLocalSigner("http://localhost:8090/local-media", nil)
	if err != nil {
		t.Fatalf("new local signer without secret: %v", err)
	}
	if _, err := signer.Sign(context.Background(), "media/abc/manifest.m3u8", time.Hour); err != nil {
		t.Fatalf("sign with ephemeral secret: %v", err)
	}
}

func TestLocalSignerRequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewLocalSigner("", []byte("secret")); err == nil {
		t.Fatalf("expected error for missing base url")
	}
}
