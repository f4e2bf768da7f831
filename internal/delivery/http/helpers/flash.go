package helpers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"confsite/internal/adapters/render"
)

// FlashCookieName holds notices queued for the next page view.
const FlashCookieName = "flash"

// Flash categories used by the templates.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// flashIssuer differs from the session issuer so neither token verifies as the other.
const flashIssuer = "confsite/flash"

// flashTTL bounds how long an unread notice survives.
const flashTTL = 10 * time.Minute

type flashClaims struct {
	jwt.RegisteredClaims
	Flashes []render.Flash `json:"flashes"`
}

// Flasher queues one-shot notices in an HS256-signed cookie.
type Flasher struct {
	secret []byte
	secure bool
	now    func() time.Time
}

func NewFlasher(secret string, secure bool) *Flasher {
	return &Flasher{secret: []byte(secret), secure: secure, now: time.Now}
}

// Add queues a notice, keeping any still unread from the incoming request.
func (f *Flasher) Add(w http.ResponseWriter, r *http.Request, category, message string) {
	flashes := f.read(r)
	flashes = append(flashes, render.Flash{Category: category, Message: message})
	f.write(w, flashes)
}

// Pop returns the queued notices and clears the cookie. Forged, expired or malformed cookies read as empty.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) []render.Flash {
	if _, err := r.Cookie(FlashCookieName); err != nil {
		return nil
	}
	flashes := f.read(r)
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return flashes
}

func (f *Flasher) read(r *http.Request) []render.Flash {
	c, err := r.Cookie(FlashCookieName)
	if err != nil {
		return nil
	}
	claims := &flashClaims{}
	_, err = jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (any, error) {
		return f.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(flashIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(f.now),
	)
	if err != nil {
		return nil
	}
	return claims.Flashes
}

func (f *Flasher) write(w http.ResponseWriter, flashes []render.Flash) {
	now := f.now()
	claims := flashClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    flashIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
		},
		Flashes: flashes,
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.secret)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
