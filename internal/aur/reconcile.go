package aur

import (
	"context"
	"sort"
)

// Reconcile merges per-batch outcomes into a single LookupOutcome.
//
// Any failed batch makes the whole lookup a failure, and every failure is
// kept. Otherwise each distinct requested name is FOUND when some batch
// returned a record with that name. A lookup where nothing was found is a
// failure; one where only some names were found is a partial success.
//
// When batches disagree about a name, the record from the lowest batch
// index wins. Reconcile does not modify its arguments and its result does
// not depend on the order of results.
func Reconcile(requested []string, results []BatchResult) *LookupOutcome {
	out := &LookupOutcome{}

	for _, br := range results {
		switch {
		case br.Err != nil:
			out.Errors = append(out.Errors, br.Err)
		case br.Result == nil:
			// A batch that never produced anything was abandoned.
			out.Errors = append(out.Errors, transportError(br.Request.Index, context.Canceled))
		}
	}
	if len(out.Errors) > 0 {
		sort.SliceStable(out.Errors, func(i, j int) bool {
			return out.Errors[i].Batch < out.Errors[j].Batch
		})
		out.Verdict = VerdictFailure
		return out
	}

	found := make(map[string]PackageRecord)
	from := make(map[string]int)
	for _, br := range results {
		for _, r := range br.Result.Records {
			if idx, ok := from[r.Name]; ok && idx <= br.Request.Index {
				continue
			}
			found[r.Name] = r
			from[r.Name] = br.Request.Index
		}
	}

	seen := make(map[string]bool, len(requested))
	nFound := 0
	for _, name := range requested {
		if seen[name] {
			continue
		}
		seen[name] = true

		status := StatusNotFound
		if r, ok := found[name]; ok {
			status = StatusFound
			out.Records = append(out.Records, r)
			nFound++
		}
		out.Statuses = append(out.Statuses, NameStatus{Name: name, Status: status})
	}

	switch {
	case nFound == 0:
		out.Verdict = VerdictFailure
	case nFound < len(out.Statuses):
		out.Verdict = VerdictPartialSuccess
	default:
		out.Verdict = VerdictSuccess
	}
	return out
}
