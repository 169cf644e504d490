package anilist

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/go-anilist-web/internal/errors"
)

// PerPage is the page size requested for media lists.
const PerPage = 50

// MediaType is AniList's media type enum.
type MediaType string

const (
	MediaTypeAnime MediaType = "ANIME"
	MediaTypeManga MediaType = "MANGA"
)

// MediaListStatusCurrent selects entries the user is watching or reading.
const MediaListStatusCurrent = "CURRENT"

var ErrInvalidMediaType = fmt.Errorf("%w: media type must be ANIME or MANGA", apperrors.ErrInvalidInput)

// ParseMediaType accepts "anime" or "manga" in any case.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(strings.ToUpper(strings.TrimSpace(s))) {
	case MediaTypeAnime:
		return MediaTypeAnime, nil
	case MediaTypeManga:
		return MediaTypeManga, nil
	}
	return "", ErrInvalidMediaType
}

// Verb is the progress verb shown next to an entry of this type.
func (t MediaType) Verb() string {
	if t == MediaTypeManga {
		return "Reading"
	}
	return "Watching"
}

type MediaTitle struct {
	English string `json:"english"`
	Romaji  string `json:"romaji"`
}

// Preferred returns the English title, falling back to romaji.
func (t MediaTitle) Preferred() string {
	if t.English != "" {
		return t.English
	}
	return t.Romaji
}

type CoverImage struct {
	Large string `json:"large"`
}

type Media struct {
	ID          int        `json:"id"`
	IDMal       int        `json:"idMal"`
	Title       MediaTitle `json:"title"`
	CoverImage  CoverImage `json:"coverImage"`
	Description string     `json:"description"`
	SiteURL     string     `json:"siteUrl"`
	Type        MediaType  `json:"type"`
	Episodes    int        `json:"episodes"`
	Chapters    int        `json:"chapters"`
}

// Total is the episode or chapter count, zero when still airing/unknown.
func (m Media) Total() int {
	if m.Type == MediaTypeManga {
		return m.Chapters
	}
	return m.Episodes
}

type MediaListEntry struct {
	Progress int   `json:"progress"`
	Media    Media `json:"media"`
}

type PageInfo struct {
	CurrentPage int  `json:"currentPage"`
	HasNextPage bool `json:"hasNextPage"`
}

// MediaPage is one page of a user's media list.
type MediaPage struct {
	PageInfo  PageInfo         `json:"pageInfo"`
	MediaList []MediaListEntry `json:"mediaList"`
}

// CurrentMediaList fetches one page of the entries the user is currently
// watching (ANIME) or reading (MANGA).
func (c *Client) CurrentMediaList(ctx context.Context, accessToken string, userID int, mediaType MediaType, page int) (MediaPage, error) {
	if _, err := ParseMediaType(string(mediaType)); err != nil {
		return MediaPage{}, err
	}
	if page < 1 {
		page = 1
	}

	query, err := LoadQuery(queryCurrentMedia)
	if err != nil {
		return MediaPage{}, err
	}

	var data struct {
		Page MediaPage `json:"Page"`
	}
	variables := map[string]any{
		"userId":  userID,
		"status":  MediaListStatusCurrent,
		"type":    string(mediaType),
		"page":    page,
		"perPage": PerPage,
	}
	if err := c.Query(ctx, accessToken, query, variables, &data); err != nil {
		return MediaPage{}, fmt.Errorf("[anilist CurrentMediaList] %w", err)
	}
	return data.Page, nil
}
