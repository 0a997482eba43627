// Package auth provides the strategy engine's API credentials: HS256 JWTs
// with role claims, and static API keys verified against bcrypt hashes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
	ErrEmptyUserID   = errors.New("userID cannot be empty")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyRole     = errors.New("role cannot be empty")
	ErrInvalidRole   = errors.New("invalid role")
	ErrShortSecret   = errors.New("secret must be at least 32 characters")
)

// Valid roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// DefaultTokenDuration applies when no token lifetime is configured.
const DefaultTokenDuration = 24 * time.Hour

var validRoles = map[string]bool{
	RoleAdmin:  true,
	RoleEditor: true,
	RoleViewer: true,
}

var roleRank = map[string]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
}

// RoleAtLeast reports whether role meets the required level
// (viewer < editor < admin). Unknown roles never qualify.
func RoleAtLeast(role, required string) bool {
	rank, ok := roleRank[role]
	requiredRank, okRequired := roleRank[required]
	return ok && okRequired && rank >= requiredRank
}

// Claims represents JWT claims
type Claims struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	IssuedAt  time.Time `json:"issued_at"`
}

// JWTManager manages JWT token generation and validation
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// NewJWTManager creates a new JWT manager.
// Returns an error if the secret is shorter than 32 characters (security requirement).
func NewJWTManager(secret string, tokenDuration time.Duration) (*JWTManager, error) {
	if len(secret) < 32 {
		return nil, ErrShortSecret
	}
	if tokenDuration <= 0 {
		tokenDuration = DefaultTokenDuration
	}

	return &JWTManager{
		secretKey:     []byte(secret),
		tokenDuration: tokenDuration,
	}, nil
}

// GenerateToken generates a new JWT token
func (m *JWTManager) GenerateToken(userID, username, role string) (string, error) {
	// Validate inputs
	if userID == "" {
		return "", ErrEmptyUserID
	}
	if username == "" {
		return "", ErrEmptyUsername
	}
	if role == "" {
		return "", ErrEmptyRole
	}
	if !validRoles[role] {
		return "", fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	now := time.Now()
	expiresAt := now.Add(m.tokenDuration)

	claims := jwt.MapClaims{
		"user_id":    userID,
		"username":   username,
		"role":       role,
		"expires_at": expiresAt.Unix(),
		"issued_at":  now.Unix(),
		"exp":        expiresAt.Unix(), // Standard JWT expiration claim
		"iat":        now.Unix(),       // Standard JWT issued at claim
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claimsMap, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	userID, ok := claimsMap["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("%w: missing or invalid user_id", ErrInvalidClaims)
	}

	username, ok := claimsMap["username"].(string)
	if !ok || username == "" {
		return nil, fmt.Errorf("%w: missing or invalid username", ErrInvalidClaims)
	}

	role, ok := claimsMap["role"].(string)
	if !ok || role == "" {
		return nil, fmt.Errorf("%w: missing or invalid role", ErrInvalidClaims)
	}

	expiresAtFloat, ok := claimsMap["expires_at"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid expires_at", ErrInvalidClaims)
	}
	expiresAt := time.Unix(int64(expiresAtFloat), 0)

	issuedAtFloat, ok := claimsMap["issued_at"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid issued_at", ErrInvalidClaims)
	}
	issuedAt := time.Unix(int64(issuedAtFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, ErrExpiredToken
	}

	return &Claims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		ExpiresAt: expiresAt,
		IssuedAt:  issuedAt,
	}, nil
}

// GetTokenDuration returns the configured token duration
func (m *JWTManager) GetTokenDuration() time.Duration {
	return m.tokenDuration
}
