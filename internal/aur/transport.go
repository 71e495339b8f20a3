package aur

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tsukumogami/aurq/internal/log"
)

const (
	// DefaultBaseURL is the public AUR.
	DefaultBaseURL = "https://aur.archlinux.org"

	// rpcVersion is the AUR RPC interface version spoken by this package.
	rpcVersion = "5"

	// maxResponseSize limits response body to prevent memory exhaustion (10MB)
	maxResponseSize = 10 * 1024 * 1024
)

// RequestType selects the RPC method for a QueryRequest.
type RequestType int

const (
	// RequestInfo looks up packages by exact name.
	RequestInfo RequestType = iota
	// RequestSearch searches for a single term in the field named by By.
	RequestSearch
)

// Transport performs a single RPC call. A completed exchange is returned as
// a RawResponse whatever its status code; an error means the exchange did
// not complete. Implementations must not retry.
type Transport interface {
	Execute(ctx context.Context, req QueryRequest) (*RawResponse, error)
}

// HTTPTransport is a Transport that talks to an AUR instance over HTTP.
type HTTPTransport struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     log.Logger
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*HTTPTransport)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) TransportOption {
	return func(t *HTTPTransport) { t.userAgent = ua }
}

// WithTransportLogger sets the logger used for request tracing.
func WithTransportLogger(l log.Logger) TransportOption {
	return func(t *HTTPTransport) { t.logger = l }
}

// NewHTTPTransport creates a transport for the AUR at baseURL. If httpClient
// is nil, http.DefaultClient is used.
func NewHTTPTransport(httpClient *http.Client, baseURL string, opts ...TransportOption) *HTTPTransport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	t := &HTTPTransport{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "aurq",
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Execute sends req to the RPC endpoint.
func (t *HTTPTransport) Execute(ctx context.Context, req QueryRequest) (*RawResponse, error) {
	u, err := t.requestURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	t.logger.Debug("rpc request", "batch", req.Index, "url", u)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	t.logger.Debug("rpc response", "batch", req.Index, "status", resp.StatusCode, "bytes", len(body))
	return &RawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

// requestURL builds the RPC URL for req.
func (t *HTTPTransport) requestURL(req QueryRequest) (string, error) {
	base, err := url.Parse(t.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	u := base.JoinPath("rpc/")

	q := url.Values{}
	q.Set("v", rpcVersion)
	switch req.Type {
	case RequestSearch:
		if len(req.Names) != 1 {
			return "", fmt.Errorf("search takes exactly one term, got %d", len(req.Names))
		}
		q.Set("type", "search")
		q.Set("by", string(req.By))
		q.Set("arg", req.Names[0])
	default:
		q.Set("type", "info")
		for _, name := range req.Names {
			q.Add("arg[]", name)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
