package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID string
	Role   string
	Email  string
	Name   string
}

func Issue(secret string, c Claims, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   c.UserID,
		"role":  c.Role,
		"email": c.Email,
		"name":  c.Name,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse validates an HS256 token string and returns its claims.
func Parse(tokenStr, secret string) (Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Claims{}, err
	}
	if !tok.Valid {
		return Claims{}, errors.New("invalid token")
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}

	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claims{}, errors.New("missing subject")
	}
	role, _ := mc["role"].(string)
	email, _ := mc["email"].(string)
	name, _ := mc["name"].(string)

	return Claims{UserID: sub, Role: role, Email: email, Name: name}, nil
}

// ParseAuthHeader extracts and validates the bearer token from an
// Authorization header value.
func ParseAuthHeader(header, secret string) (Claims, error) {
	tokenStr := strings.TrimSpace(header)
	if tokenStr == "" {
		return Claims{}, errors.New("missing authorization")
	}
	if strings.HasPrefix(strings.ToLower(tokenStr), "bearer ") {
		tokenStr = strings.TrimSpace(tokenStr[7:])
	}
	if tokenStr == "" {
		return Claims{}, errors.New("missing token")
	}
	return Parse(tokenStr, secret)
}
