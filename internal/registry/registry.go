package registry

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Registry is a concurrency-safe set of addresses already claimed for
// crawling. It is created empty per run, seeded with the starting
// address, grows monotonically while the run lasts, and is discarded
// afterwards.
//
// Design decision: Claim is a single atomic test-and-set rather than
// separate contains/add operations. A check-then-add pair would race:
// two tasks discovering the same link could both pass the check and
// both fetch the page.
type Registry struct {
	mu      sync.Mutex
	visited map[string]struct{}
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{visited: make(map[string]struct{})}
}

// Claim marks the address as visited and returns true iff it was not
// already present. Exactly one caller ever receives true for a given
// address; that caller owns fetching it for the remainder of the run.
func (r *Registry) Claim(u *url.URL) bool {
	key := Normalize(u)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.visited[key]; ok {
		return false
	}
	r.visited[key] = struct{}{}
	return true
}

// Len returns the number of claimed addresses.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visited)
}

// Snapshot returns the claimed addresses sorted lexicographically.
// Sorting makes reports deterministic across runs with identical input.
func (r *Registry) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs := make([]string, 0, len(r.visited))
	for addr := range r.visited {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}

// Normalize produces the dedup key for an address: fragment dropped,
// scheme and host lower-cased, and an empty path treated as "/" so that
// http://example.com and http://example.com/ claim the same slot.
func Normalize(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)
	if c.Host != "" && c.Path == "" {
		c.Path = "/"
	}
	return c.String()
}

// Progress counts completed crawl tasks. It exists for observability
// only; no correctness decision is ever based on it.
type Progress struct {
	count atomic.Int64
}

// Add increments the counter by n and returns the new total.
func (p *Progress) Add(n int) int {
	return int(p.count.Add(int64(n)))
}

// Count returns the current total.
func (p *Progress) Count() int {
	return int(p.count.Load())
}
