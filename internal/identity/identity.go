package identity

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// Identity is the authenticated shopper as described by the identity
// provider's token. The engine consumes the token as an opaque credential for
// order attribution; these fields exist only for greeting and display.
type Identity struct {
	Subject string
	Name    string
	Email   string
}

// FromToken decodes the claims of a provider-issued JWT without verifying its
// signature. The engine is not the token's audience and holds no verification
// key; the credential travels onward untouched, this is a courtesy decode.
func FromToken(token string) (*Identity, error) {
	parser := &jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode identity token: %w", err)
	}

	id := &Identity{
		Subject: claimString(claims, "sub"),
		Name:    claimString(claims, "name"),
		Email:   claimString(claims, "email"),
	}
	if id.Subject == "" && id.Email == "" {
		return nil, fmt.Errorf("identity token carries no subject or email claim")
	}
	return id, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
