package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-anilist-web/server/redirectrepo"
	"github.com/jrsteele09/go-anilist-web/sessions"
	"github.com/rs/zerolog"
)

// CallbackPageData is rendered by callback.html, which navigates the browser
// to RedirectTo once the session cookie has been stored.
type CallbackPageData struct {
	AppName    string
	RedirectTo string
}

func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("callback.html")
	if err != nil {
		panic("Failed to parse callback template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		code := r.FormValue("code")
		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")

		// Denied consent or a provider error
		if errorParam != "" {
			http.Error(w, fmt.Sprintf("Authorization failed: %s - %s", errorParam, errorDesc), http.StatusBadRequest)
			return
		}

		if code == "" {
			http.Error(w, "Missing code parameter", http.StatusBadRequest)
			return
		}

		token, err := s.anilist.Exchange(r.Context(), code)
		if err != nil {
			logError(r, "token exchange failed", err)
			http.Error(w, "Token exchange failed", http.StatusInternalServerError)
			return
		}

		viewer, err := s.anilist.Viewer(r.Context(), token.AccessToken)
		if err != nil {
			logError(r, "viewer fetch failed", err)
			http.Error(w, "Failed to fetch AniList profile", http.StatusInternalServerError)
			return
		}

		session := sessions.Session{
			AccessToken: token.AccessToken,
			UserID:      viewer.ID,
			DisplayName: viewer.Name,
			AvatarURL:   viewer.Avatar.URL(),
		}
		if err := s.sessions.Write(w, session); err != nil {
			logError(r, "session cookie not written", err)
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		redirectTo, ok := s.redirects.Consume(redirectrepo.VisitorKey(r))
		if !ok {
			redirectTo = RouteHome
		}

		zerolog.Ctx(r.Context()).Info().
			Int("user_id", viewer.ID).
			Str("redirect_to", redirectTo).
			Msg("viewer signed in")

		w.Header().Set("Content-Type", contentTypeHTML)
		w.Header().Set("Cache-Control", "no-store")
		data := CallbackPageData{
			AppName:    s.config.GetAppName(),
			RedirectTo: redirectTo,
		}
		if err := tmpl.Execute(w, data); err != nil {
			logError(r, "callback template", err)
		}
	}
}
