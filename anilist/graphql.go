package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-anilist-web/internal/errors"
)

// maxResponseSize caps how much of a GraphQL response body is read.
const maxResponseSize = 4 << 20

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage    `json:"data"`
	Errors []GraphQLErrorItem `json:"errors"`
}

// GraphQLErrorItem is a single entry of a GraphQL "errors" array.
type GraphQLErrorItem struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// GraphQLError is returned when AniList answers with a non-2xx status or a
// non-empty errors array.
type GraphQLError struct {
	StatusCode int
	Errors     []GraphQLErrorItem
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		msgs = append(msgs, item.Message)
	}
	if len(msgs) == 0 {
		return fmt.Sprintf("graphql request failed: status %d", e.StatusCode)
	}
	return fmt.Sprintf("graphql request failed: status %d: %s", e.StatusCode, strings.Join(msgs, "; "))
}

func (e *GraphQLError) Unwrap() error {
	return apperrors.ErrUpstream
}

// Query posts a GraphQL document with the given variables, authenticated as
// the owner of accessToken, and decodes the "data" member into out.
func (c *Client) Query(ctx context.Context, accessToken, query string, variables map[string]any, out any) error {
	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("[anilist Query] failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resourceURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("[anilist Query] failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrapf(upstream(err), "[anilist Query]")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return apperrors.Wrapf(upstream(err), "[anilist Query] failed to read response")
	}

	var decoded graphQLResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &GraphQLError{StatusCode: resp.StatusCode, Errors: decoded.Errors}
	}
	if decodeErr != nil {
		return apperrors.Wrapf(upstream(decodeErr), "[anilist Query] malformed response")
	}
	if len(decoded.Errors) > 0 {
		return &GraphQLError{StatusCode: resp.StatusCode, Errors: decoded.Errors}
	}
	if len(decoded.Data) == 0 || string(decoded.Data) == "null" {
		return apperrors.Wrapf(upstream(fmt.Errorf("response has no data")), "[anilist Query]")
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return apperrors.Wrapf(upstream(err), "[anilist Query] failed to decode data")
	}
	return nil
}
