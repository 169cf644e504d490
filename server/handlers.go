package server

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-anilist-web/anilist"
	apperrors "github.com/jrsteele09/go-anilist-web/internal/errors"
	"github.com/jrsteele09/go-anilist-web/sessions"
	"github.com/rs/zerolog"
)

// IndexPageData contains data for rendering the landing page
type IndexPageData struct {
	AppName string
}

// HomePageData contains data for rendering the signed-in home page
type HomePageData struct {
	AppName string
	Viewer  sessions.Session
}

// CurrentPageData contains data for rendering a current media list
type CurrentPageData struct {
	AppName   string
	Viewer    sessions.Session
	MediaType anilist.MediaType
	Verb      string
	Page      anilist.MediaPage
	PrevPage  int
	NextPage  int
}

// IndexHandler renders the landing page, or sends signed-in visitors home
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParsePage("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.sessions.Read(r); ok {
			http.Redirect(w, r, RouteHome, http.StatusFound)
			return
		}
		s.render(w, r, tmpl, IndexPageData{AppName: s.config.GetAppName()})
	}
}

// HomeHandler renders the signed-in viewer's profile
func (s *Server) HomeHandler() http.HandlerFunc {
	tmpl, err := ParsePage("home.html")
	if err != nil {
		panic("Failed to parse home template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, RouteAuth, http.StatusFound)
			return
		}
		s.render(w, r, tmpl, HomePageData{AppName: s.config.GetAppName(), Viewer: session})
	}
}

// CurrentHandler renders the viewer's CURRENT anime or manga list
func (s *Server) CurrentHandler() http.HandlerFunc {
	tmpl, err := ParsePage("current.html")
	if err != nil {
		panic("Failed to parse current template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, RouteAuth, http.StatusFound)
			return
		}

		mediaType, err := anilist.ParseMediaType(r.URL.Query().Get("type"))
		if err != nil {
			http.Error(w, "type must be ANIME or MANGA", http.StatusBadRequest)
			return
		}
		page, err := parsePage(r.URL.Query().Get("page"))
		if err != nil {
			http.Error(w, "page must be a positive integer", http.StatusBadRequest)
			return
		}

		list, err := s.anilist.CurrentMediaList(r.Context(), session.AccessToken, session.UserID, mediaType, page)
		if err != nil {
			logError(r, "current media list", err)
			http.Error(w, "Failed to fetch media list from AniList", http.StatusInternalServerError)
			return
		}

		data := CurrentPageData{
			AppName:   s.config.GetAppName(),
			Viewer:    session,
			MediaType: mediaType,
			Verb:      mediaType.Verb(),
			Page:      list,
		}
		if page > 1 {
			data.PrevPage = page - 1
		}
		if list.PageInfo.HasNextPage {
			data.NextPage = page + 1
		}
		s.render(w, r, tmpl, data)
	}
}

// NotFoundHandler renders a 404 for unmatched routes
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "404 - Page Not Found", http.StatusNotFound)
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.ExecuteTemplate(w, layoutTemplate, data); err != nil {
		logError(r, "template "+layoutTemplate, err)
	}
}

func parsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidInput, "[server parsePage] invalid page %q", raw)
	}
	return page, nil
}

func logError(r *http.Request, msg string, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(msg)
}
