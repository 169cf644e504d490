package config

import "time"

const (
	clientIDEnvVar = "ANILIST_CLIENT_ID"
)

type AniListConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetAuthorizeURL() string
	GetTokenURL() string
	GetResourceURL() string
	GetHTTPTimeout() time.Duration
}

type AniList struct {
	ClientID     string        `env:"ANILIST_CLIENT_ID,required,notEmpty"`
	ClientSecret string        `env:"ANILIST_CLIENT_SECRET,required,notEmpty"`
	RedirectURI  string        `env:"ANILIST_REDIRECT_URI" envDefault:"http://localhost:3000/auth/callback"`
	AuthorizeURL string        `env:"ANILIST_AUTHORIZE_URL" envDefault:"https://anilist.co/api/v2/oauth/authorize"`
	TokenURL     string        `env:"ANILIST_TOKEN_URL" envDefault:"https://anilist.co/api/v2/oauth/token"`
	ResourceURL  string        `env:"ANILIST_RESOURCE_URL" envDefault:"https://graphql.anilist.co"`
	HTTPTimeout  time.Duration `env:"ANILIST_HTTP_TIMEOUT" envDefault:"15s"`
}

var _ AniListConfig = AniList{}

func (a AniList) GetClientID() string {
	return a.ClientID
}

func (a AniList) GetClientSecret() string {
	return a.ClientSecret
}

func (a AniList) GetRedirectURI() string {
	return a.RedirectURI
}

func (a AniList) GetAuthorizeURL() string {
	return a.AuthorizeURL
}

func (a AniList) GetTokenURL() string {
	return a.TokenURL
}

func (a AniList) GetResourceURL() string {
	return a.ResourceURL
}

// GetHTTPTimeout bounds every outbound call to AniList. Zero means no limit.
func (a AniList) GetHTTPTimeout() time.Duration {
	return a.HTTPTimeout
}
