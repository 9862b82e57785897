package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingUserFields is returned when issuing a token for a user record
	// without an id or email.
	ErrMissingUserFields = errors.New("missing user fields")
	// ErrInvalidToken is returned on any verification failure: bad signature,
	// expired token or malformed payload.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenTTL is the fixed lifetime of an issued token. Tokens are stateless and
// cannot be revoked before this expiry.
const TokenTTL = 7 * 24 * time.Hour

// Claims is the verified identity attached to a request.
type Claims struct {
	UserID string
	Email  string
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies self-contained signed bearer tokens. A
// token's validity is fully determined by its signature and expiry, there is
// no server-side session state.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue signs a token carrying the user's id as subject plus the email claim,
// expiring after TokenTTL.
func (m *TokenManager) Issue(userID, email string) (string, error) {
	if userID == "" || email == "" {
		return "", ErrMissingUserFields
	}

	now := time.Now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string, returning the decoded claims.
// All failure modes collapse into ErrInvalidToken; callers must not leak the
// distinction to clients.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: claims.Subject, Email: claims.Email}, nil
}
