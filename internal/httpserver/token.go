// internal/httpserver/token.go
//
// Player identity.
// Every browser or client gets a stable, anonymous player ID (a UUID) carried
// in a signed JWT cookie. A missing, expired or forged token is replaced by a
// fresh identity; there are no accounts and no passwords.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	playerCookieName = "wordle_player"
	playerTTL        = 180 * 24 * time.Hour
)

// playerTokens signs and verifies player identity tokens.
type playerTokens struct {
	secret []byte
	secure bool
	now    func() time.Time
}

// sign creates an HS256 token whose subject is the player ID.
func (p *playerTokens) sign(playerID string) (string, time.Time, error) {
	now := p.now()
	exp := now.Add(playerTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   playerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(p.secret)
	return ss, exp, err
}

// verify returns the player ID carried by a valid token.
func (p *playerTokens) verify(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid subject")
	}
	return claims.Subject, nil
}

// ensurePlayer returns the caller's player ID, issuing a new identity cookie
// when the request carries no valid token.
func (p *playerTokens) ensurePlayer(w http.ResponseWriter, r *http.Request) string {
	if tok := bearerOrCookie(r); tok != "" {
		if id, err := p.verify(tok); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	tok, exp, err := p.sign(id)
	if err != nil {
		// unsigned identities still work for this request
		return id
	}
	sameSite := http.SameSiteLaxMode
	if p.secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
	w.Header().Set("X-Player-Token", tok)
	return id
}

// bearerOrCookie extracts a bearer token from Authorization header or player cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(playerCookieName); err == nil {
		return c.Value
	}
	return ""
}
