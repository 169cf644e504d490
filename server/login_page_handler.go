package server

import (
	"net/http"

	"github.com/rs/zerolog"
)

// LoginHandler is the login entry point. Signed-in visitors go straight home,
// everyone else is sent to the AniList consent page.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.sessions.Read(r); ok {
			http.Redirect(w, r, RouteHome, http.StatusFound)
			return
		}
		http.Redirect(w, r, s.anilist.AuthURL(), http.StatusFound)
	}
}

// LogoutHandler drops the session cookie. The AniList token is not revoked.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sessions.Clear(w)
		zerolog.Ctx(r.Context()).Debug().Msg("viewer signed out")
		http.Redirect(w, r, RouteLanding, http.StatusSeeOther)
	}
}
