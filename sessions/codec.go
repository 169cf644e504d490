package sessions

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/jrsteele09/go-anilist-web/internal/config"
	apperrors "github.com/jrsteele09/go-anilist-web/internal/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	hashKeyLength = 64
	hkdfInfo      = "anilist-session-cookie-v1"
)

// Codec signs sessions into a single cookie value and owns the cookie
// attributes and expiry policy.
type Codec struct {
	name     string
	lifetime time.Duration
	secure   bool
	sc       *securecookie.SecureCookie
	now      func() time.Time
}

// NewCodec derives the HMAC key from the configured cookie secret.
func NewCodec(cfg config.SecurityConfig) (*Codec, error) {
	hashKey := make([]byte, hashKeyLength)
	kdf := hkdf.New(sha256.New, cfg.GetCookieSecret(), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, hashKey); err != nil {
		return nil, fmt.Errorf("[sessions NewCodec] failed to derive cookie key: %w", err)
	}

	lifetime := cfg.GetSessionLifetime()
	sc := securecookie.New(hashKey, nil).
		MaxAge(int(lifetime.Seconds())).
		SetSerializer(securecookie.NopEncoder{})

	return &Codec{
		name:     cfg.GetCookieName(),
		lifetime: lifetime,
		secure:   cfg.GetSecureCookies(),
		sc:       sc,
		now:      time.Now,
	}, nil
}

// Name is the cookie name.
func (c *Codec) Name() string {
	return c.name
}

// Encode packs and signs the session.
func (c *Codec) Encode(s Session) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	value, err := c.sc.Encode(c.name, []byte(s.Pack()))
	if err != nil {
		return "", fmt.Errorf("[sessions Encode] failed to sign session: %w", err)
	}
	return value, nil
}

// Decode verifies the signature and age of value and unpacks it.
func (c *Codec) Decode(value string) (Session, error) {
	var packed []byte
	if err := c.sc.Decode(c.name, value, &packed); err != nil {
		return Session{}, apperrors.Wrapf(fmt.Errorf("%w: %w", apperrors.ErrInvalidSession, err), "[sessions Decode]")
	}
	return Unpack(string(packed))
}

// NewCookie builds the session cookie for an encoded value.
func (c *Codec) NewCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		Expires:  c.now().Add(c.lifetime),
		MaxAge:   int(c.lifetime.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Read returns the session carried by the request. Absent, unsigned,
// tampered, expired and malformed cookies all read as no session.
func (c *Codec) Read(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	s, err := c.Decode(cookie.Value)
	if err != nil {
		return Session{}, false
	}
	return s, true
}

// Write signs the session and sets it on the response.
func (c *Codec) Write(w http.ResponseWriter, s Session) error {
	value, err := c.Encode(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, c.NewCookie(value))
	return nil
}

// Clear deletes the session cookie.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
