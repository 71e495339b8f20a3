package aur

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tsukumogami/aurq/internal/log"
)

// DefaultMaxConnections caps concurrent RPC calls.
const DefaultMaxConnections = 5

// ErrNoNames is returned when a lookup is started without any names.
var ErrNoNames = errors.New("no package names given")

// Client runs AUR lookups through a Transport.
type Client struct {
	transport      Transport
	maxBatchSize   int
	maxConnections int
	logger         log.Logger
	onProgress     func(done, total int)
}

// Option configures a Client.
type Option func(*Client)

// WithMaxBatchSize sets how many names are sent per RPC call.
func WithMaxBatchSize(n int) Option {
	return func(c *Client) { c.maxBatchSize = n }
}

// WithMaxConnections sets how many RPC calls may be in flight at once.
func WithMaxConnections(n int) Option {
	return func(c *Client) { c.maxConnections = n }
}

// WithLogger sets the client's logger.
func WithLogger(l log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithProgress registers a callback invoked after each batch finishes.
// It may be called from several goroutines at once.
func WithProgress(fn func(done, total int)) Option {
	return func(c *Client) { c.onProgress = fn }
}

// NewClient creates a Client that sends requests through t.
func NewClient(t Transport, opts ...Option) *Client {
	c := &Client{
		transport:      t,
		maxBatchSize:   DefaultMaxBatchSize,
		maxConnections: DefaultMaxConnections,
		logger:         log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxBatchSize < 1 {
		c.maxBatchSize = DefaultMaxBatchSize
	}
	if c.maxConnections < 1 {
		c.maxConnections = 1
	}
	return c
}

// Info looks up names by exact match and reconciles the answers. The only
// error returned is ErrNoNames; lookup failures are reported through the
// outcome's Verdict and Errors.
func (c *Client) Info(ctx context.Context, names []string) (*LookupOutcome, error) {
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	batches := Plan(names, c.maxBatchSize)
	results := c.run(ctx, batches, func(br *BatchResult, raw *RawResponse) {
		br.Result, br.Err = decodeBatch(br.Request.Index, raw)
	})

	outcome := Reconcile(names, results)
	for _, qerr := range outcome.Errors {
		c.logger.Info("batch failed", "batch", qerr.Batch, "kind", qerr.Kind.String(), "error", qerr.Error())
	}
	for _, name := range outcome.NotFound() {
		c.logger.Debug("package not found", "name", name)
	}
	c.logger.Info("lookup finished", "names", len(names), "batches", len(batches), "verdict", outcome.Verdict.String())
	return outcome, nil
}

// RawOutcome holds the undecoded bodies of an info lookup.
type RawOutcome struct {
	// Bodies holds one body per successful batch, in plan order.
	Bodies [][]byte
	Errors []*QueryError
}

// RawInfo runs the same batched lookup as Info but keeps the response
// bodies as they were received. Non-2xx responses and transport failures
// are still reported as errors.
func (c *Client) RawInfo(ctx context.Context, names []string) (*RawOutcome, error) {
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	batches := Plan(names, c.maxBatchSize)
	collected := make([][]byte, len(batches))
	results := c.run(ctx, batches, func(br *BatchResult, raw *RawResponse) {
		if raw.StatusCode < 200 || raw.StatusCode > 299 {
			br.Err = statusErrorFrom(br.Request.Index, raw)
			return
		}
		collected[br.Request.Index] = raw.Body
		br.Result = &DecodedResult{}
	})

	out := &RawOutcome{}
	for i, br := range results {
		switch {
		case br.Err != nil:
			out.Errors = append(out.Errors, br.Err)
		case br.Result == nil:
			out.Errors = append(out.Errors, transportError(i, context.Canceled))
		default:
			out.Bodies = append(out.Bodies, collected[i])
		}
	}
	return out, nil
}

// Search looks for term in the field selected by by.
func (c *Client) Search(ctx context.Context, by SearchField, term string) ([]PackageRecord, error) {
	req := QueryRequest{Type: RequestSearch, By: by, Names: []string{term}}
	results := c.run(ctx, []QueryRequest{req}, func(br *BatchResult, raw *RawResponse) {
		br.Result, br.Err = decodeBatch(0, raw)
	})

	br := results[0]
	if br.Err != nil {
		return nil, br.Err
	}
	if br.Result == nil {
		return nil, transportError(0, context.Canceled)
	}
	return br.Result.Records, nil
}

// run executes every batch, at most maxConnections at a time, and returns
// one BatchResult per batch in plan order. handle turns a completed
// exchange into the batch's result. Batches that have not started when ctx
// is done are failed with ctx's error.
func (c *Client) run(ctx context.Context, batches []QueryRequest, handle func(*BatchResult, *RawResponse)) []BatchResult {
	results := make([]BatchResult, len(batches))
	var done atomic.Int32

	var g errgroup.Group
	g.SetLimit(c.maxConnections)
	for i, req := range batches {
		results[i].Request = req
		g.Go(func() error {
			br := &results[i]
			defer func() {
				if c.onProgress != nil {
					c.onProgress(int(done.Add(1)), len(batches))
				}
			}()

			if err := ctx.Err(); err != nil {
				br.Err = transportError(req.Index, err)
				return nil
			}

			c.logger.Debug("querying batch", "batch", req.Index, "names", len(req.Names))
			raw, err := c.transport.Execute(ctx, req)
			if err != nil {
				br.Err = transportError(req.Index, err)
				return nil
			}
			if raw == nil {
				br.Err = decodeError(req.Index, "empty response", nil)
				return nil
			}
			handle(br, raw)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
