package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jrsteele09/go-anilist-web/anilist"
	"github.com/jrsteele09/go-anilist-web/anilist/anilistfake"
	"github.com/jrsteele09/go-anilist-web/internal/config"
	"github.com/jrsteele09/go-anilist-web/server"
	"github.com/jrsteele09/go-anilist-web/server/redirectrepo"
	"github.com/jrsteele09/go-anilist-web/sessions"
	"github.com/stretchr/testify/require"
)

const testCookieSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	srv       *server.Server
	fake      *anilistfake.Server
	redirects *redirectrepo.InMemoryRepo
	codec     *sessions.Codec
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	fake := anilistfake.NewServer()
	t.Cleanup(fake.Close)

	cfg, err := config.LoadFromMap(map[string]string{
		"COOKIE_SECRET":         testCookieSecret,
		"ANILIST_CLIENT_ID":     anilistfake.ClientID,
		"ANILIST_CLIENT_SECRET": anilistfake.ClientSecret,
		"ANILIST_REDIRECT_URI":  anilistfake.RedirectURI,
		"ANILIST_AUTHORIZE_URL": fake.URL + anilistfake.AuthorizePath,
		"ANILIST_TOKEN_URL":     fake.URL + anilistfake.TokenPath,
		"ANILIST_RESOURCE_URL":  fake.URL + anilistfake.GraphQLPath,
		"ENV":                   config.EnvProduction,
	})
	require.NoError(t, err)

	codec, err := sessions.NewCodec(cfg)
	require.NoError(t, err)

	redirects := redirectrepo.NewInMemoryRepo()
	srv, err := server.New(cfg, anilist.New(cfg, fake.Client()), redirects)
	require.NoError(t, err)

	return &testEnv{srv: srv, fake: fake, redirects: redirects, codec: codec}
}

func (e *testEnv) do(t *testing.T, method, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("User-Agent", "test-browser")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) signedIn(t *testing.T) *http.Cookie {
	t.Helper()
	value, err := e.codec.Encode(sessions.Session{
		AccessToken: anilistfake.AccessToken,
		UserID:      4242,
		DisplayName: "Rin",
		AvatarURL:   "https://img/rin.png",
	})
	require.NoError(t, err)
	return e.codec.NewCookie(value)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	require.FailNow(t, "session cookie not set")
	return nil
}

func TestServer_ProtectedWithoutSession(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodGet, "/current?type=MANGA")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, server.RouteAuth, rec.Header().Get("Location"))
	require.Equal(t, 1, e.redirects.Len())

	token, graphQL := e.fake.Calls()
	require.Zero(t, token)
	require.Zero(t, graphQL)
}

func TestServer_InvalidCookieTreatedAsAbsent(t *testing.T) {
	e := setup(t)

	cookie := e.signedIn(t)
	cookie.Value += "x"

	rec := e.do(t, http.MethodGet, "/home", cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, server.RouteAuth, rec.Header().Get("Location"))
}

func TestServer_CallbackSignsIn(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodGet, "/current?type=MANGA")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, 1, e.redirects.Len())

	rec = e.do(t, http.MethodGet, "/auth/callback?code="+anilistfake.Code)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	cookie := sessionCookie(t, rec, e.codec.Name())
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	require.Equal(t, 172800, cookie.MaxAge)

	session, err := e.codec.Decode(cookie.Value)
	require.NoError(t, err)
	require.Equal(t, anilistfake.AccessToken, session.AccessToken)
	require.Equal(t, 4242, session.UserID)
	require.Equal(t, "Rin", session.DisplayName)
	require.Contains(t, session.AvatarURL, "large")

	require.Zero(t, e.redirects.Len(), "pending redirect is consumed")

	body := rec.Body.String()
	require.Contains(t, body, "window.location")
	require.Contains(t, body, "current?type=MANGA")
	require.Contains(t, body, "/static/loading_ripple.svg")
}

func TestServer_CallbackDefaultsToHome(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodGet, "/auth/callback?code="+anilistfake.Code)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "home")
	require.NotContains(t, rec.Body.String(), "current")
}

func TestServer_CallbackErrors(t *testing.T) {
	t.Run("missing code", func(t *testing.T) {
		e := setup(t)
		rec := e.do(t, http.MethodGet, "/auth/callback")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		token, _ := e.fake.Calls()
		require.Zero(t, token)
	})

	t.Run("provider error", func(t *testing.T) {
		e := setup(t)
		rec := e.do(t, http.MethodGet, "/auth/callback?error=access_denied&error_description=denied")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "access_denied")
	})

	t.Run("rejected code", func(t *testing.T) {
		e := setup(t)
		rec := e.do(t, http.MethodGet, "/auth/callback?code=nope")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("viewer fetch fails", func(t *testing.T) {
		e := setup(t)
		e.fake.FailGraphQL(http.StatusBadGateway)
		rec := e.do(t, http.MethodGet, "/auth/callback?code="+anilistfake.Code)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Empty(t, rec.Result().Cookies())
	})
}

func TestServer_CurrentInvalidType(t *testing.T) {
	e := setup(t)
	cookie := e.signedIn(t)

	for _, target := range []string{"/current?type=BOOKS", "/current", "/current?type=ANIME&page=0", "/current?type=ANIME&page=x"} {
		rec := e.do(t, http.MethodGet, target, cookie)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	token, graphQL := e.fake.Calls()
	require.Zero(t, token)
	require.Zero(t, graphQL)
}

func TestServer_Current(t *testing.T) {
	e := setup(t)
	e.fake.SetMedia(anilist.MediaTypeAnime, []anilist.MediaListEntry{
		{
			Progress: 3,
			Media: anilist.Media{
				ID:       1,
				Title:    anilist.MediaTitle{English: "Frieren", Romaji: "Sousou no Frieren"},
				SiteURL:  "https://anilist.co/anime/1",
				Type:     anilist.MediaTypeAnime,
				Episodes: 28,
			},
		},
	})

	rec := e.do(t, http.MethodGet, "/current?type=anime", e.signedIn(t))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Currently Watching")
	require.Contains(t, body, "Frieren")
	require.Contains(t, body, "3 / 28")

	vars := e.fake.LastVariables()
	require.Equal(t, "ANIME", vars["type"])
	require.Equal(t, "CURRENT", vars["status"])
}

func TestServer_CurrentUpstreamError(t *testing.T) {
	e := setup(t)
	e.fake.FailGraphQL(http.StatusBadGateway)

	rec := e.do(t, http.MethodGet, "/current?type=MANGA", e.signedIn(t))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_Logout(t *testing.T) {
	e := setup(t)

	for _, cookies := range [][]*http.Cookie{nil, {e.signedIn(t)}} {
		rec := e.do(t, http.MethodPost, "/logout", cookies...)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, server.RouteLanding, rec.Header().Get("Location"))

		cookie := sessionCookie(t, rec, e.codec.Name())
		require.Empty(t, cookie.Value)
		require.Negative(t, cookie.MaxAge)
	}
}

func TestServer_AuthEntry(t *testing.T) {
	t.Run("signed in goes home", func(t *testing.T) {
		e := setup(t)

		rec := e.do(t, http.MethodGet, "/auth", e.signedIn(t))
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, server.RouteHome, rec.Header().Get("Location"))

		token, graphQL := e.fake.Calls()
		require.Zero(t, token)
		require.Zero(t, graphQL)
	})

	t.Run("anonymous goes to provider", func(t *testing.T) {
		e := setup(t)

		rec := e.do(t, http.MethodGet, "/auth")
		require.Equal(t, http.StatusFound, rec.Code)

		u, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		require.Equal(t, anilistfake.AuthorizePath, u.Path)
		require.Equal(t, anilistfake.ClientID, u.Query().Get("client_id"))
		require.Equal(t, "code", u.Query().Get("response_type"))
	})
}

func TestServer_Landing(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `href="/auth"`)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = e.do(t, http.MethodGet, "/", e.signedIn(t))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, server.RouteHome, rec.Header().Get("Location"))
}

func TestServer_Home(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodGet, "/home", e.signedIn(t))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Welcome, Rin")
	require.Contains(t, body, "https://img/rin.png")
	require.Contains(t, body, `action="/logout"`)
	require.Zero(t, e.redirects.Len())
}

func TestServer_StaticAndNotFound(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodGet, "/static/loading_ripple.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	require.True(t, strings.HasPrefix(rec.Header().Get("Cache-Control"), "public"))

	rec = e.do(t, http.MethodGet, "/static/css/app.css")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")

	rec = e.do(t, http.MethodGet, "/static/missing.js")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/nowhere")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
