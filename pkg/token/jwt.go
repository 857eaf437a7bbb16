package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type constants. Protected routes only accept access tokens; refresh
// tokens are exchanged for new access tokens and must not be usable as one.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTManager issues and verifies the HS256 tokens used by moderator auth.
type JWTManager struct {
	secretKey            []byte
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

// CustomClaims carries the moderator identity plus the JWT registered claims.
type CustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	// TokenType distinguishes access from refresh tokens so one cannot be
	// substituted for the other.
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func NewJWTManager(secretKey string, accessTokenDuration, refreshTokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:            []byte(secretKey),
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}
}

// GenerateToken issues an access token and a refresh token for the moderator.
func (manager *JWTManager) GenerateToken(userID uint, username, role string) (string, string, error) {
	now := time.Now()

	accessClaims := &CustomClaims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "blkout-community",
			ExpiresAt: jwt.NewNumericDate(now.Add(manager.accessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	accessTokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(manager.secretKey)
	if err != nil {
		return "", "", err
	}

	refreshClaims := &CustomClaims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "blkout-community",
			ExpiresAt: jwt.NewNumericDate(now.Add(manager.refreshTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	refreshTokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(manager.secretKey)
	if err != nil {
		return "", "", err
	}

	return accessTokenString, refreshTokenString, nil
}

// VerifyToken validates the signature and expiry and returns the claims.
func (manager *JWTManager) VerifyToken(tokenString string) (*CustomClaims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&CustomClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return manager.secretKey, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*CustomClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
