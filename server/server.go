package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-anilist-web/anilist"
	"github.com/jrsteele09/go-anilist-web/internal/config"
	"github.com/jrsteele09/go-anilist-web/oauthmodel"
	"github.com/jrsteele09/go-anilist-web/server/redirectrepo"
	"github.com/jrsteele09/go-anilist-web/sessions"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// AniList is the part of the AniList client the handlers depend on.
type AniList interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (oauthmodel.TokenResponse, error)
	Viewer(ctx context.Context, accessToken string) (anilist.Viewer, error)
	CurrentMediaList(ctx context.Context, accessToken string, userID int, mediaType anilist.MediaType, page int) (anilist.MediaPage, error)
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	handler   http.Handler
	routes    []string
	config    config.Config
	anilist   AniList
	sessions  *sessions.Codec
	redirects redirectrepo.Repo
	protected map[string]struct{}
}

func New(config config.Config, client AniList, redirects redirectrepo.Repo) (*Server, error) {
	codec, err := sessions.NewCodec(config)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session codec: %w", err)
	}

	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		anilist:   client,
		sessions:  codec,
		redirects: redirects,
		protected: make(map[string]struct{}, len(protectedRoutes)),
	}
	for _, route := range protectedRoutes {
		s.protected[route] = struct{}{}
	}

	s.initRoutes()
	s.handler = ChainMiddleware(s.mux.ServeHTTP, s.HTMLMiddleWare(s.AuthGate)...)
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != config.EnvDevelopment {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
