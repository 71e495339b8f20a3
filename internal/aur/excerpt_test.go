package aur

import (
	"strings"
	"testing"
)

func TestBodyExcerpt(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"whitespace", "  \n\t ", ""},
		{"plain text", "Service  Unavailable\n", "Service Unavailable"},
		{"json", `{"error":"rate limited"}`, `{"error":"rate limited"}`},
		{
			"maintenance page",
			`<!DOCTYPE html><html><head><title>AUR</title><style>body{}</style></head>
<body><h1>Down for maintenance</h1><!-- back soon --><script>var x;</script><p>Try again later.</p></body></html>`,
			"Down for maintenance Try again later.",
		},
		{"binary", "\xff\xfe\x00", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bodyExcerpt([]byte(tt.body)); got != tt.want {
				t.Errorf("bodyExcerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBodyExcerptTruncates(t *testing.T) {
	got := bodyExcerpt([]byte(strings.Repeat("é", maxExcerptLen)))
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncation marker, got %q", got)
	}
	if len(got) > maxExcerptLen+3 {
		t.Errorf("excerpt too long: %d bytes", len(got))
	}
	if !strings.HasPrefix(got, "é") || strings.ContainsRune(got, '�') {
		t.Errorf("excerpt split a rune: %q", got)
	}
}

func TestStatusErrorKeepsExcerptOutOfMessage(t *testing.T) {
	qerr := statusErrorFrom(2, &RawResponse{StatusCode: 503, Body: []byte("<p>Down for maintenance</p>")})
	if qerr.Error() != "unexpected HTTP status code 503" {
		t.Errorf("Error() = %q", qerr.Error())
	}
	if qerr.Detail != "Down for maintenance" {
		t.Errorf("Detail = %q", qerr.Detail)
	}
	if qerr.Batch != 2 {
		t.Errorf("Batch = %d, want 2", qerr.Batch)
	}
}
