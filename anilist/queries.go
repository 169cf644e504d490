package anilist

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed gql/*.gql
var queryFiles embed.FS

const (
	queryViewer       = "viewer"
	queryCurrentMedia = "current_media"
)

// LoadQuery returns the GraphQL document stored as gql/<name>.gql.
func LoadQuery(name string) (string, error) {
	content, err := fs.ReadFile(queryFiles, "gql/"+name+".gql")
	if err != nil {
		return "", fmt.Errorf("[anilist LoadQuery] unknown query %q: %w", name, err)
	}
	return string(content), nil
}
