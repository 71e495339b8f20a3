// Package errmsg provides enhanced error message formatting with actionable suggestions.
package errmsg

import (
	"errors"
	"net"
	"strings"

	"github.com/tsukumogami/aurq/internal/aur"
)

// ErrorContext provides additional context for error formatting
type ErrorContext struct {
	BaseURL string // The AUR instance queried, if known
}

// Format returns a formatted error message with possible causes and suggestions.
// The context parameter is optional - pass nil for generic formatting.
func Format(err error, ctx *ErrorContext) string {
	if err == nil {
		return ""
	}

	var qerr *aur.QueryError
	if errors.As(err, &qerr) {
		return formatQueryError(qerr, ctx)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return formatNetworkError(netErr)
	}

	errMsg := err.Error()
	if isPermissionError(errMsg) {
		return render(errMsg,
			[]string{
				"Insufficient permissions on $AURQ_HOME",
				"Config file owned by a different user",
			},
			[]string{"Check permissions on ~/.aurq/config.toml"},
		)
	}

	return errMsg
}

func formatQueryError(err *aur.QueryError, ctx *ErrorContext) string {
	var causes []string
	switch err.Kind {
	case aur.KindStatus:
		switch {
		case err.StatusCode == 429:
			causes = []string{"Too many requests to the AUR RPC interface"}
		case err.StatusCode >= 500:
			causes = []string{"AUR service outage or maintenance", "A proxy between you and the AUR failed"}
		case err.StatusCode == 404:
			causes = []string{"The configured URL has no /rpc/ endpoint"}
		default:
			causes = []string{"The server rejected the request"}
		}
	case aur.KindDecode:
		causes = []string{
			"The configured URL is not an AUR instance",
			"A captive portal or proxy answered instead of the AUR",
		}
	case aur.KindTransport:
		switch err.Class {
		case aur.ClassCanceled:
			return err.Error()
		case aur.ClassTimeout:
			causes = []string{"Request timed out", "Slow or unstable network connection"}
		case aur.ClassDNS:
			causes = []string{"DNS resolution failure"}
		case aur.ClassTLS:
			causes = []string{"Certificate verification failed", "System clock is wrong"}
		default:
			causes = []string{"Network connectivity issue", "Firewall or proxy blocking the connection"}
		}
	}

	var suggestions []string
	if s := err.Suggestion(); s != "" {
		suggestions = append(suggestions, s)
	}
	if ctx != nil && ctx.BaseURL != "" && err.Kind != aur.KindTransport {
		suggestions = append(suggestions, "Queried "+ctx.BaseURL+" (override with --baseurl or AURQ_AUR_URL)")
	}

	msg := err.Error()
	if err.Kind == aur.KindStatus && err.Detail != "" {
		msg += "\nServer replied: " + err.Detail
	}
	return render(msg, causes, suggestions)
}

func formatNetworkError(err net.Error) string {
	causes := []string{"Network connectivity issue", "DNS resolution failure"}
	if err.Timeout() {
		causes = []string{"Request timed out", "Slow or unstable network connection"}
	}
	causes = append(causes, "Firewall or proxy blocking the connection")

	return render(err.Error(), causes, []string{
		"Check your internet connection",
		"Try again in a few minutes",
	})
}

func render(msg string, causes, suggestions []string) string {
	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteString("\n")
	writeList(&sb, "Possible causes:", causes)
	writeList(&sb, "Suggestions:", suggestions)
	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	for _, item := range items {
		sb.WriteString("  - ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
}

// isPermissionError checks if the error message indicates a permission issue
func isPermissionError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "access denied") ||
		strings.Contains(lower, "operation not permitted")
}
