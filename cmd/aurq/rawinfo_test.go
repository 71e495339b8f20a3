package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsukumogami/aurq/internal/aur"
)

func TestRunRawInfo(t *testing.T) {
	client, _, base := testClient(t, 1)
	var stdout, stderr bytes.Buffer

	code := runRawInfo(context.Background(), client, []string{"auracle-git", "pkgfile-git"}, base, &stdout, &stderr)
	require.Equal(t, ExitSuccess, code)
	require.Empty(t, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var payload struct {
			Type        string `json:"type"`
			ResultCount int    `json:"resultcount"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &payload))
		require.Equal(t, "multiinfo", payload.Type)
		require.Equal(t, 1, payload.ResultCount)
	}
}

func TestRunRawInfo_NotFoundIsStillAReply(t *testing.T) {
	client, _, base := testClient(t, 100)
	var stdout, stderr bytes.Buffer

	code := runRawInfo(context.Background(), client, []string{"packagenotfoundbro"}, base, &stdout, &stderr)
	require.Equal(t, ExitSuccess, code)
	require.Contains(t, stdout.String(), `"resultcount":0`)
}

func TestRunRawInfo_BadStatus(t *testing.T) {
	client, _, base := testClient(t, 1)
	var stdout, stderr bytes.Buffer

	code := runRawInfo(context.Background(), client, []string{"auracle-git", "503"}, base, &stdout, &stderr)
	require.Equal(t, ExitNetwork, code)
	require.Contains(t, stdout.String(), "auracle-git")
	require.Equal(t, "error: unexpected HTTP status code 503\n", stderr.String())
}

func TestOutcomeExitCode(t *testing.T) {
	tests := []struct {
		name    string
		outcome *aur.LookupOutcome
		want    int
	}{
		{"success", &aur.LookupOutcome{Verdict: aur.VerdictSuccess}, ExitSuccess},
		{"partial", &aur.LookupOutcome{Verdict: aur.VerdictPartialSuccess}, ExitSuccess},
		{"none found", &aur.LookupOutcome{Verdict: aur.VerdictFailure}, ExitNotFound},
		{
			"status",
			&aur.LookupOutcome{Verdict: aur.VerdictFailure, Errors: []*aur.QueryError{{Kind: aur.KindStatus, StatusCode: 500}}},
			ExitNetwork,
		},
		{
			"transport",
			&aur.LookupOutcome{Verdict: aur.VerdictFailure, Errors: []*aur.QueryError{{Kind: aur.KindTransport}}},
			ExitNetwork,
		},
		{
			"decode first",
			&aur.LookupOutcome{Verdict: aur.VerdictFailure, Errors: []*aur.QueryError{{Kind: aur.KindDecode}, {Kind: aur.KindStatus}}},
			ExitGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, outcomeExitCode(tt.outcome))
		})
	}
}
