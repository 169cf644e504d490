package anilist

import (
	"context"
	"fmt"

	apperrors "github.com/jrsteele09/go-anilist-web/internal/errors"
)

// Avatar holds the viewer's avatar image URLs.
type Avatar struct {
	Large  string `json:"large"`
	Medium string `json:"medium"`
}

// URL is the largest avatar available.
func (a Avatar) URL() string {
	if a.Large != "" {
		return a.Large
	}
	return a.Medium
}

// Viewer is the user owning the access token.
type Viewer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar Avatar `json:"avatar"`
}

// Viewer fetches the id, name and avatar of the access token's owner.
func (c *Client) Viewer(ctx context.Context, accessToken string) (Viewer, error) {
	query, err := LoadQuery(queryViewer)
	if err != nil {
		return Viewer{}, err
	}

	var data struct {
		Viewer *Viewer `json:"Viewer"`
	}
	if err := c.Query(ctx, accessToken, query, nil, &data); err != nil {
		return Viewer{}, fmt.Errorf("[anilist Viewer] %w", err)
	}
	if data.Viewer == nil || data.Viewer.ID == 0 {
		return Viewer{}, apperrors.Wrapf(upstream(fmt.Errorf("viewer missing from response")), "[anilist Viewer]")
	}
	return *data.Viewer, nil
}
