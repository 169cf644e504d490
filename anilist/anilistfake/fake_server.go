package anilistfake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/jrsteele09/go-anilist-web/anilist"
	"github.com/jrsteele09/go-anilist-web/internal/config"
	"github.com/jrsteele09/go-anilist-web/oauthmodel"
)

const (
	ClientID     = "fake-client-id"
	ClientSecret = "fake-client-secret"
	RedirectURI  = "http://localhost:3000/auth/callback"
	Code         = "valid-code"
	AccessToken  = "fake-access-token"
	RefreshToken = "fake-refresh-token"

	AuthorizePath = "/api/v2/oauth/authorize"
	TokenPath     = "/api/v2/oauth/token"
	GraphQLPath   = "/graphql"
)

// Server is an in-process stand-in for the AniList OAuth and GraphQL endpoints.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	viewer        anilist.Viewer
	media         map[anilist.MediaType][]anilist.MediaListEntry
	tokenStatus   int
	graphQLStatus int
	tokenCalls    int
	graphQLCalls  int
	lastTokenForm url.Values
	lastVariables map[string]any
}

// NewServer starts a fake AniList. Close it when done.
func NewServer() *Server {
	s := &Server{
		viewer: anilist.Viewer{
			ID:   4242,
			Name: "Rin",
			Avatar: anilist.Avatar{
				Large:  "https://s4.anilist.co/file/anilistcdn/user/avatar/large/default.png",
				Medium: "https://s4.anilist.co/file/anilistcdn/user/avatar/medium/default.png",
			},
		},
		media: make(map[anilist.MediaType][]anilist.MediaListEntry),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+TokenPath, s.handleToken)
	mux.HandleFunc("POST "+GraphQLPath, s.handleGraphQL)
	s.Server = httptest.NewServer(mux)
	return s
}

// Config points an AniList client at this server.
func (s *Server) Config() config.AniList {
	return config.AniList{
		ClientID:     ClientID,
		ClientSecret: ClientSecret,
		RedirectURI:  RedirectURI,
		AuthorizeURL: s.URL + AuthorizePath,
		TokenURL:     s.URL + TokenPath,
		ResourceURL:  s.URL + GraphQLPath,
	}
}

func (s *Server) SetViewer(v anilist.Viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer = v
}

func (s *Server) SetMedia(t anilist.MediaType, entries []anilist.MediaListEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media[t] = entries
}

// FailToken makes the token endpoint answer with status.
func (s *Server) FailToken(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenStatus = status
}

// FailGraphQL makes the GraphQL endpoint answer with status.
func (s *Server) FailGraphQL(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphQLStatus = status
}

// Calls returns the number of requests seen by the token and GraphQL endpoints.
func (s *Server) Calls() (token, graphQL int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenCalls, s.graphQLCalls
}

func (s *Server) LastTokenForm() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTokenForm
}

func (s *Server) LastVariables() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastVariables
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenCalls++

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}
	s.lastTokenForm = r.PostForm

	if s.tokenStatus != 0 {
		writeJSON(w, s.tokenStatus, map[string]string{"error": "server_error"})
		return
	}

	f := r.PostForm
	if f.Get("grant_type") != string(oauthmodel.AuthorizationCodeGrant) ||
		f.Get("client_id") != ClientID ||
		f.Get("client_secret") != ClientSecret ||
		f.Get("redirect_uri") != RedirectURI ||
		f.Get("code") != Code {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
		return
	}

	writeJSON(w, http.StatusOK, oauthmodel.TokenResponse{
		TokenType:    "Bearer",
		ExpiresIn:    31536000,
		AccessToken:  AccessToken,
		RefreshToken: RefreshToken,
	})
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphQLCalls++

	if s.graphQLStatus != 0 {
		writeGraphQLError(w, s.graphQLStatus, "Internal Server Error")
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+AccessToken {
		writeGraphQLError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGraphQLError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	s.lastVariables = req.Variables

	switch {
	case strings.Contains(req.Query, "Viewer"):
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{"Viewer": s.viewer},
		})
	case strings.Contains(req.Query, "mediaList"):
		mediaType, _ := req.Variables["type"].(string)
		entries := s.media[anilist.MediaType(mediaType)]
		if entries == nil {
			entries = []anilist.MediaListEntry{}
		}
		page := 1
		if p, ok := req.Variables["page"].(float64); ok {
			page = int(p)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{
				"Page": anilist.MediaPage{
					PageInfo:  anilist.PageInfo{CurrentPage: page},
					MediaList: entries,
				},
			},
		})
	default:
		writeGraphQLError(w, http.StatusBadRequest, "Unknown query")
	}
}

func writeGraphQLError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"data":   nil,
		"errors": []anilist.GraphQLErrorItem{{Message: message, Status: status}},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
