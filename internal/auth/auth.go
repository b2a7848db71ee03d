package auth

import (
	"fmt"
	"strings"

	"github.com/dgrijalva/jwt-go"
)

// Authorizer answers whether an identity carries administrative capability.
// The coordinator and registry depend on this instead of any credential list.
type Authorizer interface {
	IsAdministrator(email string) bool
}

// AllowList is the simplest Authorizer: a fixed set of administrator emails.
type AllowList struct {
	emails map[string]struct{}
}

func NewAllowList(emails []string) *AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		set[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &AllowList{emails: set}
}

func (a *AllowList) IsAdministrator(email string) bool {
	_, ok := a.emails[strings.ToLower(email)]
	return ok
}

var _ Authorizer = (*AllowList)(nil)

// Claims carried by the portal's bearer tokens. Token issuance happens in the
// auth provider; this service only verifies.
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// ParseIdentity verifies an HMAC-signed bearer token and returns the
// authenticated email.
func ParseIdentity(tokenString, secret string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Email == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Email, nil
}
