package oauthmodel

import (
	"math"
	"time"

	"golang.org/x/oauth2"
)

// TokenResponse is the provider's answer to an authorization_code exchange.
// It is never persisted; the access token is folded into the session cookie.
type TokenResponse struct {
	// TokenType is how the access token is presented, "Bearer" for AniList.
	TokenType string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds.
	// AniList issues year-long tokens, well beyond the session cookie.
	ExpiresIn int `json:"expires_in"`

	// AccessToken is sent as "Authorization: Bearer <access_token>" on every
	// GraphQL call.
	AccessToken string `json:"access_token"`

	// RefreshToken is returned by the provider but not used.
	RefreshToken string `json:"refresh_token"`
}

// FromOAuth2Token converts a token obtained through golang.org/x/oauth2.
func FromOAuth2Token(t *oauth2.Token, now time.Time) (TokenResponse, error) {
	if t == nil || t.AccessToken == "" {
		return TokenResponse{}, ErrMissingAccessToken
	}
	resp := TokenResponse{
		TokenType:    t.Type(),
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	}
	if !t.Expiry.IsZero() {
		resp.ExpiresIn = int(math.Round(t.Expiry.Sub(now).Seconds()))
	}
	return resp, nil
}
