package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public routes
	RouteLanding = "/"

	// Auth routes
	RouteAuth         = "/auth"
	RouteAuthCallback = "/auth/callback"
	RouteLogout       = "/logout"

	// Authenticated routes
	RouteHome    = "/home"
	RouteCurrent = "/current"

	// Static asset route (pattern)
	RouteStatic = "/static/{file...}"
)

// protectedRoutes require a valid session cookie; anything else is public.
var protectedRoutes = []string{
	RouteHome,
	RouteCurrent,
}
