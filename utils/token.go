package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenExpired reports whether a stored bearer token is already past its
// expiry claim. The portal never holds the backend's signing key, so the
// token is inspected without signature verification; validity is ultimately
// decided by the backend on the profile fetch. Tokens that do not parse or
// carry no "exp" claim are treated as expired.
func TokenExpired(tokenString string) bool {
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return true
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return true
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}

// TokenSubject extracts the "sub" claim from a stored bearer token without
// verifying its signature.
func TokenSubject(tokenString string) (string, error) {
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
