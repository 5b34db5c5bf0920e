package security

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/domain"
	"github.com/streamforge/media-access-service/internal/ports"
)

// JWTVerifier validates bearer tokens minted by the platform auth service.
// This service never signs tokens; only the verify side lives here so the
// application layer stays crypto-library agnostic.
type JWTVerifier struct {
	publicKey *rsa.PublicKey
	hsSecret  []byte
}

// NewJWTVerifier accepts an RS256 public key PEM, an HS256 shared secret, or
// both; at least one is required.
func NewJWTVerifier(publicKeyPEM string, hsSecret []byte) (*JWTVerifier, error) {
	v := &JWTVerifier{hsSecret: hsSecret}
	if publicKeyPEM != "" {
		pub, err := parseRSAPublic(publicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("parse public key: %w", err)
		}
		v.publicKey = pub
	}
	if v.publicKey == nil && len(v.hsSecret) == 0 {
		return nil, errors.New("jwt verifier needs a public key or shared secret")
	}
	return v, nil
}

type accessJWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (v *JWTVerifier) Verify(_ context.Context, raw string) (ports.AuthClaims, error) {
	methods := make([]string, 0, 2)
	if v.publicKey != nil {
		methods = append(methods, jwt.SigningMethodRS256.Alg())
	}
	if len(v.hsSecret) > 0 {
		methods = append(methods, jwt.SigningMethodHS256.Alg())
	}

	parsed, err := jwt.ParseWithClaims(raw, &accessJWTClaims{}, func(token *jwt.Token) (any, error) {
		switch token.Method.Alg() {
		case jwt.SigningMethodRS256.Alg():
			if v.publicKey == nil {
				return nil, errors.New("rs256 not configured")
			}
			return v.publicKey, nil
		case jwt.SigningMethodHS256.Alg():
			if len(v.hsSecret) == 0 {
				return nil, errors.New("hs256 not configured")
			}
			return v.hsSecret, nil
		default:
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
	}, jwt.WithValidMethods(methods), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return ports.AuthClaims{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := parsed.Claims.(*accessJWTClaims)
	if !ok || !parsed.Valid {
		return ports.AuthClaims{}, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}

	rawID := claims.UserID
	if rawID == "" {
		rawID = claims.Subject
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return ports.AuthClaims{}, fmt.Errorf("%w: parse user_id: %v", domain.ErrUnauthorized, err)
	}

	return ports.AuthClaims{UserID: userID, Role: claims.Role}, nil
}

func parseRSAPublic(pemData string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}
	return pub, nil
}
