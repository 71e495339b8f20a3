package aur

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestDecode_StatusCodes(t *testing.T) {
	tests := []struct {
		status  int
		wantErr bool
	}{
		{200, false},
		{204, true}, // empty body is not valid JSON
		{299, true},
		{301, true},
		{404, true},
		{429, true},
		{500, true},
		{503, true},
		{199, true},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			body := ""
			if tt.status == 200 {
				body = `{"version":5,"type":"multiinfo","resultcount":0,"results":[]}`
			}
			_, err := Decode(&RawResponse{StatusCode: tt.status, Body: []byte(body)})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_Status503(t *testing.T) {
	// A body that would otherwise decode must still be ignored.
	body := `{"version":5,"type":"multiinfo","resultcount":1,"results":[{"Name":"x"}]}`
	res, err := Decode(&RawResponse{StatusCode: 503, Body: []byte(body)})
	if res != nil {
		t.Fatalf("Decode() returned a result for a 503 response: %+v", res)
	}

	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("Decode() error = %T, want *QueryError", err)
	}
	if qerr.Kind != KindStatus {
		t.Errorf("Kind = %v, want %v", qerr.Kind, KindStatus)
	}
	if qerr.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", qerr.StatusCode)
	}
	if got := err.Error(); got != "unexpected HTTP status code 503" {
		t.Errorf("Error() = %q", got)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"not json", `<html>oops</html>`, "failed to parse response"},
		{"truncated", `{"version":5,"resultcount":1,"results":[{"Name":"a"}`, "failed to parse response"},
		{"missing resultcount", `{"version":5,"type":"multiinfo","results":[]}`, "missing resultcount"},
		{"missing results", `{"version":5,"type":"multiinfo","resultcount":0}`, "missing results"},
		{"null results", `{"version":5,"type":"multiinfo","resultcount":0,"results":null}`, "missing results"},
		{"count mismatch", `{"version":5,"type":"multiinfo","resultcount":2,"results":[{"Name":"a"}]}`, "does not match"},
		{"record without name", `{"version":5,"type":"multiinfo","resultcount":1,"results":[{"Version":"1-1"}]}`, "has no Name"},
		{"wrong results type", `{"version":5,"type":"multiinfo","resultcount":1,"results":{"Name":"a"}}`, "failed to parse response"},
		{"service error", `{"version":5,"type":"error","resultcount":0,"results":[],"error":"Incorrect request type specified."}`, "Incorrect request type specified."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(&RawResponse{StatusCode: 200, Body: []byte(tt.body)})
			var qerr *QueryError
			if !errors.As(err, &qerr) {
				t.Fatalf("Decode() error = %v, want *QueryError", err)
			}
			if qerr.Kind != KindDecode {
				t.Errorf("Kind = %v, want %v", qerr.Kind, KindDecode)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.contains)
			}
			if strings.Contains(err.Error(), "status code") {
				t.Errorf("decode error should not read like a status error: %q", err.Error())
			}
		})
	}
}

func TestDecode_EmptyResultIsNotAnError(t *testing.T) {
	res, err := Decode(&RawResponse{
		StatusCode: 200,
		Body:       []byte(`{"version":5,"type":"multiinfo","resultcount":0,"results":[]}`),
	})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(res.Records) != 0 {
		t.Errorf("expected no records, got %d", len(res.Records))
	}
}

func TestDecode_Records(t *testing.T) {
	body := `{
		"version": 5,
		"type": "multiinfo",
		"resultcount": 2,
		"results": [
			{"ID": 1, "Name": "auracle-git", "PackageBase": "auracle-git", "Version": "r74.82e1796-1",
			 "Description": "A flexible client for the AUR", "NumVotes": 30, "Popularity": 1.5,
			 "OutOfDate": null, "Maintainer": "falconindy", "Depends": ["pacman", "libcurl.so"]},
			{"ID": 2, "Name": "pkgfile-git", "Version": "18.2-1", "OutOfDate": 1500000000}
		]
	}`
	res, err := Decode(&RawResponse{StatusCode: 200, Body: []byte(body)})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}

	first := res.Records[0]
	if first.Name != "auracle-git" || first.Version != "r74.82e1796-1" || first.Maintainer != "falconindy" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.OutOfDate != nil {
		t.Errorf("OutOfDate = %v, want nil", *first.OutOfDate)
	}
	if len(first.Depends) != 2 || first.Depends[1] != "libcurl.so" {
		t.Errorf("Depends = %v", first.Depends)
	}

	second := res.Records[1]
	if second.OutOfDate == nil || *second.OutOfDate != 1500000000 {
		t.Errorf("OutOfDate = %v, want 1500000000", second.OutOfDate)
	}
}

func TestDecode_NilResponse(t *testing.T) {
	_, err := Decode(nil)
	var qerr *QueryError
	if !errors.As(err, &qerr) || qerr.Kind != KindDecode {
		t.Fatalf("Decode(nil) error = %v, want decode error", err)
	}
}
