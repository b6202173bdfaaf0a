package jwt

import (
	"errors"
	"strconv"
	"time"

	jw "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSubject    = errors.New("no subject")
)

// Codec signs and verifies HS256 session tokens. The "sub" claim carries the
// numeric user id.
type Codec struct {
	secret []byte
}

func New(secret string) *Codec { return &Codec{secret: []byte(secret)} }

func (c *Codec) Make(userID uint64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jw.MapClaims{
		"sub": strconv.FormatUint(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse validates the token and returns the user id from "sub". Expiry is
// enforced by the jwt library when "exp" is present.
func (c *Codec) Parse(tok string) (uint64, error) {
	t, err := jw.Parse(tok, func(t *jw.Token) (any, error) {
		return c.secret, nil
	}, jw.WithValidMethods([]string{jw.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return 0, ErrInvalidToken
	}
	sub, err := t.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrNoSubject
	}
	uid, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrNoSubject
	}
	return uid, nil
}
