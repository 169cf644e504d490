package redirectrepo

import (
	"errors"
	"strings"
	"sync"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
// Entries are only removed by Consume.
type InMemoryRepo struct {
	mu    sync.Mutex
	paths map[string]string
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory pending redirect repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		paths: make(map[string]string),
	}
}

// Remember stores or replaces the visitor's pending redirect
func (r *InMemoryRepo) Remember(visitorKey, path string) error {
	if visitorKey == "" {
		return errors.New("visitor key cannot be empty")
	}
	if !isLocalPath(path) {
		return errors.New("path must be a local absolute path")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.paths[visitorKey] = path
	return nil
}

// Consume retrieves and removes the visitor's pending redirect
func (r *InMemoryRepo) Consume(visitorKey string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, exists := r.paths[visitorKey]
	if !exists {
		return "", false
	}
	delete(r.paths, visitorKey)
	return path, true
}

// Len returns the number of pending redirects
func (r *InMemoryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.paths)
}

// isLocalPath rejects anything a browser could resolve to another origin.
func isLocalPath(path string) bool {
	return strings.HasPrefix(path, "/") &&
		!strings.HasPrefix(path, "//") &&
		!strings.HasPrefix(path, "/\\")
}
