package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsukumogami/aurq/internal/aur"
	"github.com/tsukumogami/aurq/internal/errmsg"
)

// printInfof prints a formatted informational message unless quiet mode is enabled
func printInfof(w io.Writer, format string, a ...any) {
	if !quietFlag {
		fmt.Fprintf(w, format, a...)
	}
}

// printJSON marshals the given value to indented JSON on w
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// printRecords writes one "name version" line per record, or the records
// as JSON.
func printRecords(w io.Writer, records []aur.PackageRecord, asJSON bool) error {
	if asJSON {
		if records == nil {
			records = []aur.PackageRecord{}
		}
		return printJSON(w, records)
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%s %s\n", r.Name, r.Version); err != nil {
			return err
		}
	}
	return nil
}

// printLookupErrors writes one "error: ..." line per failed batch. With
// --verbose or --debug the likely causes and suggestions follow.
func printLookupErrors(w io.Writer, errs []*aur.QueryError, baseURL string) {
	detailed := verboseFlag || debugFlag
	for _, qerr := range errs {
		if detailed {
			fmt.Fprintf(w, "error: %s", errmsg.Format(qerr, &errmsg.ErrorContext{BaseURL: baseURL}))
			continue
		}
		fmt.Fprintf(w, "error: %s\n", qerr.Error())
	}
}

// printError prints an error to stderr with suggestions if available.
func printError(err error) {
	msg := errmsg.Format(err, nil)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(os.Stderr, "error: %s", msg)
}
