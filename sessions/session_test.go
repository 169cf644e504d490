package sessions_test

import (
	"testing"

	apperrors "github.com/jrsteele09/go-anilist-web/internal/errors"
	"github.com/jrsteele09/go-anilist-web/sessions"
	"github.com/stretchr/testify/require"
)

func testSession() sessions.Session {
	return sessions.Session{
		AccessToken: "eyJ0eXAiOiJKV1QiLCJhbGciOiJSUzI1NiJ9.payload.sig",
		UserID:      4242,
		DisplayName: "Rin",
		AvatarURL:   "https://s4.anilist.co/file/anilistcdn/user/avatar/medium/default.png",
	}
}

func TestSession_PackUnpack(t *testing.T) {
	s := testSession()

	packed := s.Pack()
	require.Equal(t, "eyJ0eXAiOiJKV1QiLCJhbGciOiJSUzI1NiJ9.payload.sig;4242;Rin;https://s4.anilist.co/file/anilistcdn/user/avatar/medium/default.png", packed)

	got, err := sessions.Unpack(packed)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestSession_EmptyOptionalFields(t *testing.T) {
	s := sessions.Session{AccessToken: "tok", UserID: 1}
	require.NoError(t, s.Validate())

	got, err := sessions.Unpack(s.Pack())
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestUnpack_Malformed(t *testing.T) {
	for name, value := range map[string]string{
		"empty":           "",
		"too few fields":  "tok;1;name",
		"too many fields": "tok;1;name;avatar;extra",
		"non-integer id":  "tok;abc;name;avatar",
		"empty token":     ";1;name;avatar",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := sessions.Unpack(value)
			require.ErrorIs(t, err, sessions.ErrMalformedSession)
			require.True(t, apperrors.Is(err, apperrors.ErrInvalidSession))
		})
	}
}

func TestSession_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, testSession().Validate())
	})

	t.Run("separator in name", func(t *testing.T) {
		s := testSession()
		s.DisplayName = "Rin;4243"
		require.ErrorIs(t, s.Validate(), sessions.ErrInvalidField)
	})

	t.Run("missing access token", func(t *testing.T) {
		s := testSession()
		s.AccessToken = ""
		require.True(t, apperrors.Is(s.Validate(), apperrors.ErrInvalidSession))
	})
}
