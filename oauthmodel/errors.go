package oauthmodel

import "errors"

var (
	ErrMissingCode        = errors.New("missing authorization code")
	ErrMissingAccessToken = errors.New("token response has no access token")
)
