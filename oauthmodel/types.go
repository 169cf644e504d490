package oauthmodel

// ResponseType represents the OAuth 2.0 response type requested from the
// authorization endpoint.
type ResponseType string

const (
	// CodeResponseType asks the provider for an authorization code that is
	// exchanged for an access token at the token endpoint.
	// Example: /oauth/authorize?client_id=...&redirect_uri=...&response_type=code
	CodeResponseType ResponseType = "code"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for an access token.
	// Token request includes: grant_type, client_id, client_secret, redirect_uri, code
	AuthorizationCodeGrant GrantType = "authorization_code"
)
