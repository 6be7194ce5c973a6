package token

import (
	"errors" // Sentinel errors
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library

	"walletapi/internal/domain" // Domain models
)

// Token kinds
const (
	KindAccess  = "access"  // Short-lived token used on every protected request
	KindRefresh = "refresh" // Longer-lived token used only to mint new pairs
)

// ErrWrongKind is returned when a token of one kind is presented where the other is expected
var ErrWrongKind = errors.New("unexpected token type")

// Claims carried by every issued token
type Claims struct {
	UserID               uint   `json:"user_id"`         // Subject user ID
	Email                string `json:"email,omitempty"` // Set on access tokens only
	TokenType            string `json:"type"`            // access or refresh
	jwt.RegisteredClaims
}

// Service issues and verifies signed bearer tokens. It is stateless beyond
// the injected signing secret and lifetimes.
type Service struct {
	secret     []byte        // HMAC signing key
	accessTTL  time.Duration // Access token lifetime
	refreshTTL time.Duration // Refresh token lifetime
}

// NewService builds a token service from explicit configuration
func NewService(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue creates a signed token of the given kind for the user
func (s *Service) Issue(user *domain.User, kind string) (string, error) {
	ttl := s.accessTTL
	email := user.Email
	if kind == KindRefresh {
		ttl = s.refreshTTL
		email = "" // Refresh tokens carry the subject only
	}
	claims := Claims{
		UserID:    user.ID, // Subject user ID
		Email:     email,   // Login email (access tokens)
		TokenType: kind,    // Token kind tag
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)), // Expiry from configured lifetime
			IssuedAt:  jwt.NewNumericDate(time.Now()),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(s.secret)                        // Sign the token with the secret
}

// IssuePair creates a fresh access and refresh token for the user
func (s *Service) IssuePair(user *domain.User) (access string, refresh string, err error) {
	if access, err = s.Issue(user, KindAccess); err != nil {
		return "", "", err
	}
	if refresh, err = s.Issue(user, KindRefresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Verify parses and validates a token string and checks its kind.
// Any failure (bad signature, expired, wrong kind) is an authentication
// failure for the caller, never a crash.
func (s *Service) Verify(tokenStr, kind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err // Invalid signature, malformed or expired
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.TokenType != kind {
		return nil, ErrWrongKind // Access token where refresh expected, or vice versa
	}
	return claims, nil
}
