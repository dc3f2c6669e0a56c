package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/umsproject/ums/internal/config"
)

// TokenType is the type reported with every issued token.
const TokenType = "bearer"

// Claims are the claims of an access token.
type Claims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Tokens issues and parses access tokens.
type Tokens struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a Tokens signing with the configured HMAC algorithm and secret.
func NewTokens(cfg config.Auth) (*Tokens, error) {
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}

	return &Tokens{
		secret: []byte(cfg.SecretKey),
		method: method,
		ttl:    cfg.AccessTokenExpire,
		now:    time.Now,
	}, nil
}

// Issue returns a signed token for subject carrying scopes.
func (t *Tokens) Issue(subject string, scopes []string) (string, error) {
	if scopes == nil {
		scopes = []string{}
	}

	now := t.now()

	claims := &Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(t.method, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Parse checks the signature, algorithm and expiry of token and returns its claims.
// Every failure wraps ErrCredentials.
func (t *Tokens) Parse(token string) (*Claims, error) {
	claims := new(Claims)

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentials, err)
	}

	if !parsed.Valid {
		return nil, ErrCredentials
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %w", ErrCredentials, errors.New("token has no subject"))
	}

	return claims, nil
}
