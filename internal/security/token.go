package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("invalid invite token")
	ErrTokenExpired = errors.New("invite token expired")
)

// InviteClaims is the payload carried by a signed family invitation link
type InviteClaims struct {
	Code     string `json:"code"`
	Email    string `json:"email"`
	FamilyID string `json:"family_id"`
	jwt.RegisteredClaims
}

// TokenSigner signs and verifies family invitation tokens with a symmetric key
type TokenSigner struct {
	secret []byte
}

// NewTokenSigner creates a signer from the configured secret. An empty
// secret is replaced with a random one, which limits tokens to the lifetime
// of the process.
func NewTokenSigner(secret string) (*TokenSigner, error) {
	if secret == "" {
		random, err := GenerateCode(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate signing secret: %w", err)
		}
		secret = random
	}
	return &TokenSigner{secret: []byte(secret)}, nil
}

// SignInvite creates a signed token for an invitation code
func (s *TokenSigner) SignInvite(code, email, familyID string, expiresAt time.Time) (string, error) {
	claims := &InviteClaims{
		Code:     code,
		Email:    email,
		FamilyID: familyID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign invite token: %w", err)
	}
	return signed, nil
}

// VerifyInvite parses and validates a signed invitation token
func (s *TokenSigner) VerifyInvite(tokenString string) (*InviteClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	claims := &InviteClaims{}
	parsedToken, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsedToken.Valid || claims.Code == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
