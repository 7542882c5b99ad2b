package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stayhub/internal/domain"
)

var (
	// ErrNoCredential indicates that the request carried no session
	// credential at all. This is the normal anonymous case, not a failure.
	ErrNoCredential = errors.New("no session credential")
	// ErrTokenInvalid indicates a malformed token or a signature mismatch.
	ErrTokenInvalid = errors.New("invalid session token")
	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("session token expired")
)

// Claims is the identity payload embedded in a session token. Subject
// carries the user id as a decimal string.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// IssueToken signs a session token binding the identity to the secret. A
// zero ttl issues a token without an expiry claim; a negative ttl issues an
// already-expired one.
func IssueToken(identity domain.Identity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(identity.UserID, 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
		Email: identity.Email,
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken checks the token signature and expiry and returns the embedded
// identity. Any alteration of the payload fails verification.
func VerifyToken(tokenString string, secret []byte) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, ErrTokenExpired
		}
		return domain.Identity{}, ErrTokenInvalid
	}
	if !token.Valid {
		return domain.Identity{}, ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Identity{}, ErrTokenInvalid
	}

	return domain.Identity{UserID: userID, Email: claims.Email}, nil
}
