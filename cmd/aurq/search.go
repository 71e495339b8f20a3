package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/aurq/internal/aur"
)

var (
	searchByFlag   string
	searchJSONFlag bool
)

var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Search the AUR",
	Long: `Search the AUR and print matching packages as "name version" lines,
sorted by name.

With several terms, only packages matching every term are shown.

Search fields:
  ` + searchFieldList() + `

Examples:
  aurq search auracle
  aurq search --searchby=maintainer falconindy
  aurq search --searchby=depends libcurl.so`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		by, err := aur.ParseSearchField(searchByFlag)
		if err != nil {
			printError(err)
			exitWithCode(ExitUsage)
		}

		s := loadSettings()
		ctx, cancel := s.lookupContext(cmd.Context())
		defer cancel()

		client, stop := s.newClient(os.Stderr, !searchJSONFlag)
		code := runSearch(ctx, client, by, args, s.baseURL, os.Stdout, os.Stderr)
		stop()
		cancel()
		exitWithCode(code)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchByFlag, "searchby", string(aur.SearchByNameDesc), "Field to search ("+searchFieldList()+")")
	searchCmd.Flags().BoolVar(&searchJSONFlag, "json", false, "Print matching packages as JSON")
	_ = searchCmd.RegisterFlagCompletionFunc("searchby", completeSearchFields)
}

func searchFieldList() string {
	fields := make([]string, len(aur.SearchFields))
	for i, f := range aur.SearchFields {
		fields[i] = string(f)
	}
	return strings.Join(fields, ", ")
}

type searchClient interface {
	Search(ctx context.Context, by aur.SearchField, term string) ([]aur.PackageRecord, error)
}

func runSearch(ctx context.Context, client searchClient, by aur.SearchField, terms []string, baseURL string, stdout, stderr io.Writer) int {
	var matched []aur.PackageRecord
	for i, term := range terms {
		records, err := client.Search(ctx, by, term)
		if err != nil {
			var qerr *aur.QueryError
			if errors.As(err, &qerr) {
				printLookupErrors(stderr, []*aur.QueryError{qerr}, baseURL)
				return exitCodeFor(qerr)
			}
			fmt.Fprintf(stderr, "error: %v\n", err)
			return ExitGeneral
		}
		if i == 0 {
			matched = records
			continue
		}
		matched = intersect(matched, records)
	}

	if len(matched) == 0 {
		fmt.Fprintln(stderr, "error: no results found")
		return ExitNotFound
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	if err := printRecords(stdout, matched, searchJSONFlag); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitGeneral
	}
	return ExitSuccess
}

// intersect keeps the records of a whose name also appears in b.
func intersect(a, b []aur.PackageRecord) []aur.PackageRecord {
	names := make(map[string]bool, len(b))
	for _, r := range b {
		names[r.Name] = true
	}
	var out []aur.PackageRecord
	for _, r := range a {
		if names[r.Name] {
			out = append(out, r)
		}
	}
	return out
}
