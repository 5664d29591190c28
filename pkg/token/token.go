package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/arnavshah/shift-lookup-go/pkg/session"
	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken is returned for tokens that fail verification or have expired
var ErrInvalidToken = errors.New("invalid session token")

var signingMethod = jwt.SigningMethodHS256

// Claims carries a selection state between stateless requests
type Claims struct {
	SelectedPerson string `json:"selected_person"`
	SearchText     string `json:"search_text"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session state tokens
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer signing with secret. Tokens expire after ttl.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue creates a token carrying state
func (i *Issuer) Issue(state session.State) (string, error) {
	now := i.now()
	claims := &Claims{
		SelectedPerson: state.SelectedPerson,
		SearchText:     state.SearchText,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the state it carries
func (i *Issuer) Parse(tokenString string) (session.State, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{signingMethod.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		return session.State{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return session.State{}, ErrInvalidToken
	}

	return session.State{
		SelectedPerson: claims.SelectedPerson,
		SearchText:     claims.SearchText,
	}, nil
}
