package config

import (
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-anilist-web/internal/errors"
)

// MinCookieSecretLength is the shortest COOKIE_SECRET accepted at startup.
const MinCookieSecretLength = 32

type SecurityConfig interface {
	GetCookieName() string
	GetCookieSecret() []byte
	GetSessionLifetime() time.Duration
	GetSecureCookies() bool
}

type Security struct {
	CookieSecret string `env:"COOKIE_SECRET,required,notEmpty"`
}

var _ SecurityConfig = Security{}

func (Security) GetCookieName() string {
	return "anilist_state"
}

func (s Security) GetCookieSecret() []byte {
	return []byte(s.CookieSecret)
}

func (Security) GetSessionLifetime() time.Duration {
	return 2 * 24 * time.Hour
}

func (Security) GetSecureCookies() bool {
	return true
}

func (s Security) validate() error {
	if len(s.CookieSecret) < MinCookieSecretLength {
		return fmt.Errorf("%w: COOKIE_SECRET must be at least %d bytes", apperrors.ErrInvalidConfig, MinCookieSecretLength)
	}
	return nil
}
