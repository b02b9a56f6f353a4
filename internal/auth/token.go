package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 100 * time.Hour

var (
	ErrSigningKey   = errors.New("token signing key unavailable")
	ErrInvalidToken = errors.New("token is not valid")
	ErrMissingToken = errors.New("no token, authorization denied")
)

type TokenUser struct {
	ID string `json:"id"`
}

// Claims is the token payload: {"user":{"id":...},"exp":...,"iat":...}.
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

var signTokenFn = func(token *jwt.Token, key []byte) (string, error) {
	return token.SignedString(key)
}

var parseWithClaimsFn = jwt.ParseWithClaims

func (s *TokenService) Issue(userID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrSigningKey
	}
	now := s.now()
	claims := Claims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := signTokenFn(jwt.NewWithClaims(jwt.SigningMethodHS256, claims), s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningKey, err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the user id in the token.
func (s *TokenService) Verify(token string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrInvalidToken
	}
	parsed, err := parseWithClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.User.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.User.ID, nil
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
