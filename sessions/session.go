package sessions

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/jrsteele09/go-anilist-web/internal/errors"
)

const fieldSeparator = ";"

var (
	ErrMalformedSession = fmt.Errorf("%w: malformed session value", apperrors.ErrInvalidSession)
	ErrInvalidField     = fmt.Errorf("%w: field contains %q", apperrors.ErrInvalidSession, fieldSeparator)
)

// Session is the identity carried in the signed cookie between requests.
// It is created at callback time and replaced wholesale by the next login.
type Session struct {
	AccessToken string // AniList bearer token
	UserID      int    // AniList user id
	DisplayName string
	AvatarURL   string
}

// Validate reports whether the session can be packed without ambiguity.
func (s Session) Validate() error {
	if s.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", apperrors.ErrInvalidSession)
	}
	for _, f := range []string{s.AccessToken, s.DisplayName, s.AvatarURL} {
		if strings.Contains(f, fieldSeparator) {
			return ErrInvalidField
		}
	}
	return nil
}

// Pack serialises the session as accessToken;userId;displayName;avatarUrl.
func (s Session) Pack() string {
	return strings.Join([]string{
		s.AccessToken,
		strconv.Itoa(s.UserID),
		s.DisplayName,
		s.AvatarURL,
	}, fieldSeparator)
}

// Unpack is the inverse of Pack.
func Unpack(value string) (Session, error) {
	parts := strings.Split(value, fieldSeparator)
	if len(parts) != 4 || parts[0] == "" {
		return Session{}, ErrMalformedSession
	}
	userID, err := strconv.Atoi(parts[1])
	if err != nil {
		return Session{}, ErrMalformedSession
	}
	return Session{
		AccessToken: parts[0],
		UserID:      userID,
		DisplayName: parts[2],
		AvatarURL:   parts[3],
	}, nil
}
