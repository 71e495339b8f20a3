package aur

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrorKind identifies which stage of a batch query failed.
type ErrorKind int

const (
	// KindTransport indicates the HTTP exchange did not complete
	// (connection refused, DNS failure, timeout, cancellation).
	KindTransport ErrorKind = iota
	// KindStatus indicates the exchange completed with a non-2xx status.
	KindStatus
	// KindDecode indicates a 2xx response whose body could not be decoded.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// TransportClass refines a KindTransport error.
type TransportClass int

const (
	// ClassNetwork is the fallback when nothing more specific is known.
	ClassNetwork TransportClass = iota
	ClassTimeout
	ClassDNS
	ClassConnection
	ClassTLS
	ClassCanceled
)

// QueryError describes why a single batch failed. Exactly one Kind applies;
// StatusCode is only meaningful for KindStatus and Class for KindTransport.
// For KindStatus, Detail carries a text excerpt of the response body and is
// never part of Error().
type QueryError struct {
	Kind       ErrorKind
	Batch      int
	StatusCode int
	Class      TransportClass
	Detail     string
	Err        error
}

// Error implements the error interface
func (e *QueryError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("unexpected HTTP status code %d", e.StatusCode)
	case KindDecode:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Detail, e.Err)
		}
		return e.Detail
	default:
		if e.Err != nil {
			return fmt.Sprintf("request failed: %v", e.Err)
		}
		return "request failed"
	}
}

// Unwrap returns the underlying error for error chain support
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Suggestion returns an actionable hint for the user, or an empty string.
func (e *QueryError) Suggestion() string {
	switch e.Kind {
	case KindStatus:
		if e.StatusCode == 429 {
			return "The AUR is throttling requests. Wait a few minutes before trying again"
		}
		if e.StatusCode >= 500 {
			return "The AUR may be temporarily unavailable. Try again in a few minutes"
		}
		return "Check that the configured AUR URL points at an RPC endpoint"
	case KindDecode:
		return "The server did not answer with AUR RPC data. Check the configured AUR URL"
	}

	switch e.Class {
	case ClassTimeout:
		return "Check your internet connection and try again, or raise AURQ_API_TIMEOUT"
	case ClassDNS:
		return "Check your DNS settings and internet connection"
	case ClassConnection:
		return "The AUR may be down or blocked. Check if you can access it in a browser"
	case ClassTLS:
		return "There may be a certificate issue. Check your system time is correct"
	case ClassCanceled:
		return ""
	default:
		return "Check your internet connection and try again"
	}
}

func statusError(batch, code int) *QueryError {
	return &QueryError{Kind: KindStatus, Batch: batch, StatusCode: code}
}

func statusErrorFrom(batch int, raw *RawResponse) *QueryError {
	e := statusError(batch, raw.StatusCode)
	e.Detail = bodyExcerpt(raw.Body)
	return e
}

func decodeError(batch int, detail string, err error) *QueryError {
	return &QueryError{Kind: KindDecode, Batch: batch, Detail: detail, Err: err}
}

func transportError(batch int, err error) *QueryError {
	return &QueryError{Kind: KindTransport, Batch: batch, Class: classifyTransport(err), Err: err}
}

// classifyTransport walks the error chain looking for the most specific
// network failure.
func classifyTransport(err error) TransportClass {
	if err == nil {
		return ClassNetwork
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ClassCanceled
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return ClassTimeout
		}
		return ClassDNS
	}

	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return ClassTLS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return ClassTimeout
		}
		return ClassConnection
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return ClassTimeout
		}
		msg := urlErr.Err.Error()
		if strings.Contains(msg, "certificate") || strings.Contains(msg, "x509") || strings.Contains(msg, "tls") {
			return ClassTLS
		}
		return classifyTransport(urlErr.Err)
	}

	return ClassNetwork
}
