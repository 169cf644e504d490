package anilist

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/go-anilist-web/internal/config"
	apperrors "github.com/jrsteele09/go-anilist-web/internal/errors"
	"github.com/jrsteele09/go-anilist-web/oauthmodel"
	"golang.org/x/oauth2"
)

// Client talks to AniList: the OAuth2 authorization-code exchange and the
// GraphQL resource server.
type Client struct {
	oauth       oauth2.Config
	resourceURL string
	httpClient  *http.Client
	now         func() time.Time
}

// New creates a client from the AniList configuration. A nil httpClient gets
// one bounded by the configured timeout.
func New(cfg config.AniListConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.GetHTTPTimeout()}
	}
	return &Client{
		oauth: oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURI(),
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.GetAuthorizeURL(),
				TokenURL: cfg.GetTokenURL(),
				// AniList expects client_id/client_secret in the request body.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		resourceURL: cfg.GetResourceURL(),
		httpClient:  httpClient,
		now:         time.Now,
	}
}

// AuthURL is where the browser is sent to grant access:
// {authorizeUrl}?client_id=...&redirect_uri=...&response_type=code
func (c *Client) AuthURL() string {
	return c.oauth.AuthCodeURL("")
}

// Exchange trades an authorization code for an access token. Failures are not
// retried.
func (c *Client) Exchange(ctx context.Context, code string) (oauthmodel.TokenResponse, error) {
	if code == "" {
		return oauthmodel.TokenResponse{}, oauthmodel.ErrMissingCode
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return oauthmodel.TokenResponse{}, apperrors.Wrapf(upstream(err), "[anilist Exchange] token exchange failed")
	}

	resp, err := oauthmodel.FromOAuth2Token(token, c.now())
	if err != nil {
		return oauthmodel.TokenResponse{}, apperrors.Wrapf(upstream(err), "[anilist Exchange]")
	}
	return resp, nil
}

// upstream marks err as a failed call to AniList.
func upstream(err error) error {
	return fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
}
