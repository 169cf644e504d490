package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-anilist-web/server/redirectrepo"
	"github.com/jrsteele09/go-anilist-web/sessions"
	"github.com/rs/zerolog"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the decoded session of the signed-in viewer
const ContextKeySession ContextKey = "session"

// AuthGate guards the protected routes. A request without a valid session
// cookie has its path remembered for the visitor and is sent to the login
// entry. Signed-in requests carry their session in the request context.
func (s *Server) AuthGate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.sessions.Read(r)
		if ok {
			r = r.WithContext(context.WithValue(r.Context(), ContextKeySession, session))
		}

		if _, protected := s.protected[r.URL.Path]; !protected || ok {
			next(w, r)
			return
		}

		if err := s.redirects.Remember(redirectrepo.VisitorKey(r), r.URL.RequestURI()); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("pending redirect not remembered")
		}
		http.Redirect(w, r, RouteAuth, http.StatusFound)
	}
}

// SessionFromContext returns the session placed in ctx by AuthGate.
func SessionFromContext(ctx context.Context) (sessions.Session, bool) {
	session, ok := ctx.Value(ContextKeySession).(sessions.Session)
	return session, ok
}
