// Package aur queries the AUR RPC interface for package metadata.
//
// A lookup is split into batches (Plan), each batch is sent through a
// Transport, every response is decoded on its own (Decode), and the
// per-batch outcomes are merged into a single LookupOutcome (Reconcile).
// Client wires these stages together and runs batches concurrently.
package aur

import "fmt"

// PackageRecord is the metadata the AUR returns for one package.
// Only Name is interpreted here; the rest is passed through to callers.
type PackageRecord struct {
	ID             int64    `json:"ID,omitempty"`
	Name           string   `json:"Name"`
	PackageBaseID  int64    `json:"PackageBaseID,omitempty"`
	PackageBase    string   `json:"PackageBase,omitempty"`
	Version        string   `json:"Version,omitempty"`
	Description    string   `json:"Description,omitempty"`
	URL            string   `json:"URL,omitempty"`
	NumVotes       int      `json:"NumVotes"`
	Popularity     float64  `json:"Popularity"`
	OutOfDate      *int64   `json:"OutOfDate,omitempty"`
	Maintainer     string   `json:"Maintainer,omitempty"`
	Submitter      string   `json:"Submitter,omitempty"`
	FirstSubmitted int64    `json:"FirstSubmitted,omitempty"`
	LastModified   int64    `json:"LastModified,omitempty"`
	URLPath        string   `json:"URLPath,omitempty"`
	Depends        []string `json:"Depends,omitempty"`
	MakeDepends    []string `json:"MakeDepends,omitempty"`
	CheckDepends   []string `json:"CheckDepends,omitempty"`
	OptDepends     []string `json:"OptDepends,omitempty"`
	Conflicts      []string `json:"Conflicts,omitempty"`
	Provides       []string `json:"Provides,omitempty"`
	Replaces       []string `json:"Replaces,omitempty"`
	Groups         []string `json:"Groups,omitempty"`
	License        []string `json:"License,omitempty"`
	Keywords       []string `json:"Keywords,omitempty"`
	CoMaintainers  []string `json:"CoMaintainers,omitempty"`
}

// QueryRequest is the set of names sent in one RPC call.
type QueryRequest struct {
	// Index is the position of this batch in the plan.
	Index int
	Type  RequestType
	// By is the search field; only used with RequestSearch.
	By    SearchField
	Names []string
}

// SearchField names the package field a search term is matched against.
type SearchField string

const (
	SearchByName         SearchField = "name"
	SearchByNameDesc     SearchField = "name-desc"
	SearchByMaintainer   SearchField = "maintainer"
	SearchByDepends      SearchField = "depends"
	SearchByMakeDepends  SearchField = "makedepends"
	SearchByOptDepends   SearchField = "optdepends"
	SearchByCheckDepends SearchField = "checkdepends"
)

// SearchFields lists every field the AUR can search by.
var SearchFields = []SearchField{
	SearchByName,
	SearchByNameDesc,
	SearchByMaintainer,
	SearchByDepends,
	SearchByMakeDepends,
	SearchByOptDepends,
	SearchByCheckDepends,
}

// ParseSearchField validates s as a search field.
func ParseSearchField(s string) (SearchField, error) {
	for _, f := range SearchFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid search field %q", s)
}

// RawResponse is an HTTP exchange that completed, whatever its status.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// DecodedResult holds the records parsed out of a successful response.
type DecodedResult struct {
	Records []PackageRecord
}

// BatchResult pairs a request with what came back for it. Exactly one of
// Result and Err is set once the batch has run.
type BatchResult struct {
	Request QueryRequest
	Result  *DecodedResult
	Err     *QueryError
}

// Verdict is the overall judgment for one lookup.
type Verdict int

const (
	VerdictFailure Verdict = iota
	VerdictPartialSuccess
	VerdictSuccess
)

func (v Verdict) String() string {
	switch v {
	case VerdictSuccess:
		return "success"
	case VerdictPartialSuccess:
		return "partial_success"
	default:
		return "failure"
	}
}

// OK reports whether the command should exit successfully.
func (v Verdict) OK() bool {
	return v == VerdictSuccess || v == VerdictPartialSuccess
}

// LookupStatus records whether a requested name matched anything.
type LookupStatus int

const (
	StatusNotFound LookupStatus = iota
	StatusFound
)

func (s LookupStatus) String() string {
	if s == StatusFound {
		return "found"
	}
	return "not_found"
}

// NameStatus is the lookup status for one distinct requested name.
type NameStatus struct {
	Name   string
	Status LookupStatus
}

// LookupOutcome is the merged result of every batch of a lookup.
type LookupOutcome struct {
	Verdict Verdict
	// Statuses has one entry per distinct requested name, in the order the
	// names were first requested. It is empty when any batch failed.
	Statuses []NameStatus
	// Records holds one record per found name.
	Records []PackageRecord
	// Errors holds every batch failure, ordered by batch index.
	Errors []*QueryError
}

// Status returns the lookup status of name and whether name was requested.
func (o *LookupOutcome) Status(name string) (LookupStatus, bool) {
	for _, s := range o.Statuses {
		if s.Name == name {
			return s.Status, true
		}
	}
	return StatusNotFound, false
}

// NotFound returns the requested names that matched nothing.
func (o *LookupOutcome) NotFound() []string {
	var names []string
	for _, s := range o.Statuses {
		if s.Status == StatusNotFound {
			names = append(names, s.Name)
		}
	}
	return names
}
