// Package registry maps routing slugs to problem records on disk.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/go-while/go-probview/internal/models"
)

var (
	// ErrNoSlug is returned when a request carries no slug at all.
	ErrNoSlug = errors.New("no problem slug")

	// ErrNotFound is returned for slugs that are not registered or whose record is gone.
	ErrNotFound = errors.New("problem not found")
)

// RecordFile is the record location inside a problem directory
const RecordFile = "ui/problem.json"

// Loader reads a record file
type Loader func(path string) ([]byte, error)

// Entry registers one slug
type Entry struct {
	Slug string
	Path string // empty means RecordPath(dir, Slug)
}

// RecordPath returns <dir>/<slug>/ui/problem.json.
func RecordPath(dir, slug string) string {
	return filepath.Join(dir, slug, filepath.FromSlash(RecordFile))
}

// Registry is the explicit slug -> record path mapping used to resolve pages
type Registry struct {
	dir    string
	load   Loader
	mux    sync.RWMutex
	bySlug map[string]string
}

// New creates an empty registry for problems stored below dir.
func New(dir string) *Registry {
	return &Registry{
		dir:    dir,
		load:   os.ReadFile,
		bySlug: make(map[string]string),
	}
}

// SetLoader replaces the record reader. Passing nil restores os.ReadFile.
func (r *Registry) SetLoader(l Loader) {
	if l == nil {
		l = os.ReadFile
	}
	r.mux.Lock()
	r.load = l
	r.mux.Unlock()
}

// Dir returns the problems directory
func (r *Registry) Dir() string {
	return r.dir
}

// Reload swaps the whole mapping.
func (r *Registry) Reload(entries []Entry) {
	next := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Slug == "" {
			continue
		}
		path := e.Path
		if path == "" {
			path = RecordPath(r.dir, e.Slug)
		}
		next[e.Slug] = path
	}
	r.mux.Lock()
	r.bySlug = next
	r.mux.Unlock()
	log.Printf("[REGISTRY]: loaded %d problems", len(next))
}

// Register adds or replaces a single slug.
func (r *Registry) Register(slug string) {
	if slug == "" {
		return
	}
	r.mux.Lock()
	r.bySlug[slug] = RecordPath(r.dir, slug)
	r.mux.Unlock()
}

// Has reports whether slug is registered
func (r *Registry) Has(slug string) bool {
	r.mux.RLock()
	_, ok := r.bySlug[slug]
	r.mux.RUnlock()
	return ok
}

// Len returns the number of registered slugs
func (r *Registry) Len() int {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.bySlug)
}

// Slugs returns the registered slugs sorted.
func (r *Registry) Slugs() []string {
	r.mux.RLock()
	out := make([]string, 0, len(r.bySlug))
	for slug := range r.bySlug {
		out = append(out, slug)
	}
	r.mux.RUnlock()
	sort.Strings(out)
	return out
}

// Path returns the record path of a registered slug.
func (r *Registry) Path(slug string) (string, error) {
	if slug == "" {
		return "", ErrNoSlug
	}
	r.mux.RLock()
	path, ok := r.bySlug[slug]
	r.mux.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return path, nil
}

type loadResult struct {
	problem *models.Problem
	err     error
}

// Resolve loads and validates the record of slug. The read runs in its own
// goroutine; when ctx ends first ctx.Err() is returned and the result is dropped.
func (r *Registry) Resolve(ctx context.Context, slug string) (*models.Problem, error) {
	path, err := r.Path(slug)
	if err != nil {
		return nil, err
	}
	r.mux.RLock()
	load := r.load
	r.mux.RUnlock()

	done := make(chan loadResult, 1) // buffered: a late result must not block the loader
	go func() {
		p, err := readRecord(load, path)
		done <- loadResult{problem: p, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Printf("[REGISTRY]: resolve '%s' canceled: %v", slug, ctx.Err())
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("resolve %s: %w", slug, res.err)
		}
		return res.problem, nil
	}
}

func readRecord(load Loader, path string) (*models.Problem, error) {
	data, err := load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrMalformed, err)
	}
	return models.DecodeProblem(data)
}
