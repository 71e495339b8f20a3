// Package testutil provides a fake AUR RPC server for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Package is one entry the fake server knows about.
type Package struct {
	Name        string
	Version     string
	Description string
	Maintainer  string
	Depends     []string
}

// AUR is an in-memory stand-in for the AUR RPC interface. An info request
// naming a package whose name is a number gets that number back as the
// HTTP status, so tests can provoke 404s and 503s by name.
type AUR struct {
	mu       sync.Mutex
	packages map[string]Package
	requests []string
}

// NewAUR creates a fake server preloaded with packages.
func NewAUR(packages ...Package) *AUR {
	a := &AUR{packages: make(map[string]Package)}
	for _, p := range packages {
		a.Add(p)
	}
	return a
}

// DefaultPackages mirrors a few real AUR entries.
func DefaultPackages() []Package {
	return []Package{
		{Name: "auracle-git", Version: "r367.61fe1e9-1", Description: "A flexible client for the AUR", Maintainer: "falconindy", Depends: []string{"pacman", "libarchive.so", "libcurl.so", "libsystemd.so"}},
		{Name: "pkgfile-git", Version: "r300.0f8a3b5-1", Description: "a pacman .files metadata explorer", Maintainer: "falconindy", Depends: []string{"libarchive", "curl", "pcre", "pacman-mirrorlist"}},
		{Name: "nlohmann-json", Version: "3.11.3-1", Description: "JSON for Modern C++", Maintainer: "someone"},
	}
}

// Add registers or replaces a package.
func (a *AUR) Add(p Package) {
	if p.Version == "" {
		p.Version = "1.0-1"
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.packages[p.Name] = p
}

// Requests returns the raw query strings received so far.
func (a *AUR) Requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requests...)
}

// Start serves the fake on a local listener until the test ends.
func (a *AUR) Start(t testing.TB) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(a)
	t.Cleanup(srv.Close)
	return srv
}

// ServeHTTP implements http.Handler.
func (a *AUR) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/rpc/" && r.URL.Path != "/rpc" {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	a.mu.Lock()
	a.requests = append(a.requests, r.URL.RawQuery)
	a.mu.Unlock()

	if q.Get("v") != "5" {
		writeJSON(w, map[string]any{"version": nil, "type": "error", "resultcount": 0, "results": []any{}, "error": "Invalid version specified."})
		return
	}

	switch q.Get("type") {
	case "info", "multiinfo":
		a.info(w, q["arg[]"])
	case "search":
		a.search(w, q.Get("by"), q.Get("arg"))
	default:
		writeJSON(w, map[string]any{"version": 5, "type": "error", "resultcount": 0, "results": []any{}, "error": "Incorrect request type specified."})
	}
}

func (a *AUR) info(w http.ResponseWriter, names []string) {
	for _, name := range names {
		if code, err := strconv.Atoi(name); err == nil && strconv.Itoa(code) == name {
			w.WriteHeader(code)
			return
		}
	}

	a.mu.Lock()
	seen := make(map[string]bool)
	var results []map[string]any
	for _, name := range names {
		p, ok := a.packages[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		results = append(results, record(p))
	}
	a.mu.Unlock()

	writeResults(w, "multiinfo", results)
}

func (a *AUR) search(w http.ResponseWriter, by, term string) {
	if code, err := strconv.Atoi(term); err == nil && strconv.Itoa(code) == term {
		w.WriteHeader(code)
		return
	}

	a.mu.Lock()
	var results []map[string]any
	for _, p := range a.packages {
		if matches(p, by, term) {
			results = append(results, record(p))
		}
	}
	a.mu.Unlock()

	sort.Slice(results, func(i, j int) bool {
		return results[i]["Name"].(string) < results[j]["Name"].(string)
	})
	writeResults(w, "search", results)
}

func matches(p Package, by, term string) bool {
	switch by {
	case "name":
		return strings.Contains(p.Name, term)
	case "", "name-desc":
		return strings.Contains(p.Name, term) || strings.Contains(p.Description, term)
	case "maintainer":
		return p.Maintainer == term
	case "depends":
		for _, d := range p.Depends {
			if d == term {
				return true
			}
		}
	}
	return false
}

func record(p Package) map[string]any {
	return map[string]any{
		"Name":        p.Name,
		"PackageBase": p.Name,
		"Version":     p.Version,
		"Description": p.Description,
		"Maintainer":  p.Maintainer,
		"Depends":     p.Depends,
		"OutOfDate":   nil,
		"NumVotes":    1,
		"Popularity":  0.5,
		"URLPath":     "/cgit/aur.git/snapshot/" + p.Name + ".tar.gz",
	}
}

func writeResults(w http.ResponseWriter, typ string, results []map[string]any) {
	if results == nil {
		results = []map[string]any{}
	}
	writeJSON(w, map[string]any{
		"version":     5,
		"type":        typ,
		"resultcount": len(results),
		"results":     results,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// TempHome points AURQ_HOME at a fresh directory for the test.
func TempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AURQ_HOME", dir)
	return dir
}
