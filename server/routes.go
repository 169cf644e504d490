package server

import (
	"net/http"
	"strings"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteLanding+"{$}", s.IndexHandler())

	// AUTH
	s.RegisterRouteFunc("GET "+RouteAuth, s.LoginHandler())
	s.RegisterRouteFunc("GET "+RouteAuthCallback, s.OAuthCallbackHandler())
	s.RegisterRouteFunc("POST "+RouteLogout, s.LogoutHandler())

	// Authenticated pages, gated by AuthGate
	s.RegisterRouteFunc("GET "+RouteHome, s.HomeHandler())
	s.RegisterRouteFunc("GET "+RouteCurrent, s.CurrentHandler())

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.CacheMiddleware))

	// Anything unmatched
	s.RegisterRouteFunc(RouteLanding, s.NotFoundHandler())
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.PathValue("file"), "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r, filePath, err)
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
