package auth

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/faeflux/faeflux-one/model"
	"github.com/golang-jwt/jwt/v5"
)

// TokenType is a closed enumeration so a typo in the "type" claim can never
// silently pass a verification check.
type TokenType int

const (
	TokenTypeAccess TokenType = iota
	TokenTypeRefresh
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeAccess:
		return "access"
	case TokenTypeRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

func tokenTypeFromClaim(s string) (TokenType, bool) {
	switch s {
	case "access":
		return TokenTypeAccess, true
	case "refresh":
		return TokenTypeRefresh, true
	default:
		return 0, false
	}
}

type TokenClaims struct {
	Email string         `json:"email"`
	Role  model.UserRole `json:"role"`
	Type  string         `json:"type"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim as a user id, or 0 if absent or malformed.
func (c *TokenClaims) UserID() uint {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// TokenService issues and verifies RS256-signed access/refresh tokens.
// Only the issuing side needs the private key; verification requires the
// public key alone. Key material is read from disk at the moment of use so
// that verify-only deployments never touch the private key file.
type TokenService struct {
	privateKeyFile  string
	publicKeyFile   string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewTokenService(privateKeyFile, publicKeyFile string, accessTokenTTL, refreshTokenTTL time.Duration) *TokenService {
	return &TokenService{
		privateKeyFile:  privateKeyFile,
		publicKeyFile:   publicKeyFile,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (s *TokenService) loadPrivateKey() (interface{}, error) {
	pemBytes, err := os.ReadFile(s.privateKeyFile)
	if err != nil {
		slog.Error("Failed to read signing private key", "path", s.privateKeyFile, "error", err)
		return nil, fmt.Errorf("load private key %s: %w", s.privateKeyFile, err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		slog.Error("Malformed signing private key", "path", s.privateKeyFile, "error", err)
		return nil, fmt.Errorf("parse private key %s: %w", s.privateKeyFile, err)
	}
	return key, nil
}

func (s *TokenService) loadPublicKey() (interface{}, error) {
	pemBytes, err := os.ReadFile(s.publicKeyFile)
	if err != nil {
		slog.Error("Failed to read signing public key", "path", s.publicKeyFile, "error", err)
		return nil, fmt.Errorf("load public key %s: %w", s.publicKeyFile, err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		slog.Error("Malformed signing public key", "path", s.publicKeyFile, "error", err)
		return nil, fmt.Errorf("parse public key %s: %w", s.publicKeyFile, err)
	}
	return key, nil
}

func (s *TokenService) issue(user *model.User, tokenType TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Email: user.Email,
		Role:  user.Role,
		Type:  tokenType.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	privateKey, err := s.loadPrivateKey()
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(privateKey)
}

// IssueAccessToken signs a short-lived access token for user. An optional
// ttlOverride replaces the configured lifetime.
func (s *TokenService) IssueAccessToken(user *model.User, ttlOverride ...time.Duration) (string, error) {
	ttl := s.accessTokenTTL
	if len(ttlOverride) > 0 {
		ttl = ttlOverride[0]
	}
	return s.issue(user, TokenTypeAccess, ttl)
}

// IssueRefreshToken signs a long-lived refresh token for user.
func (s *TokenService) IssueRefreshToken(user *model.User) (string, error) {
	return s.issue(user, TokenTypeRefresh, s.refreshTokenTTL)
}

// Verify validates signature, expiry and declared token type. Any failure,
// including malformed input, yields ErrTokenInvalid; it never panics and
// never returns a decoded payload alongside an error.
func (s *TokenService) Verify(tokenStr string, expected TokenType) (*TokenClaims, error) {
	publicKey, err := s.loadPublicKey()
	if err != nil {
		return nil, err
	}
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", token.Method.Alg())
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	declared, ok := tokenTypeFromClaim(claims.Type)
	if !ok || declared != expected {
		slog.Warn("Token type mismatch", "expected", expected.String(), "got", claims.Type)
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}
