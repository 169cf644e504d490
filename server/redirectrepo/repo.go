package redirectrepo

import (
	"net"
	"net/http"
)

// Repo remembers, per unauthenticated visitor, the path they asked for before
// being sent to log in.
type Repo interface {
	// Remember records path for the visitor, replacing any earlier entry.
	Remember(visitorKey, path string) error
	// Consume returns the visitor's path and deletes it.
	Consume(visitorKey string) (string, bool)
	// Len is the number of visitors with a pending redirect.
	Len() int
}

// VisitorKey identifies a visitor by remote address and user agent. It is
// weak and spoofable, good enough to land a user back on the page they wanted.
func VisitorKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return host + "@" + r.UserAgent()
}
