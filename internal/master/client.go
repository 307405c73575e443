package master

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dreamware/crucible/internal/wire"
)

// Client issues HTTP calls to minions and translates transport and HTTP
// errors into breaker-observable failures. It holds no per-job state.
type Client struct {
	http *resty.Client
}

// NewClient builds a Client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{http: resty.New().SetTimeout(timeout)}
}

// ChunkOutcome is what the master learns from one crack dispatch: the
// status the minion reported (or ERROR, synthesised locally, for any
// transport failure), plus the password when FOUND.
type ChunkOutcome struct {
	Status   wire.ChunkStatus
	Password string
}

// Crack dispatches one chunk to endpoint. Any transport failure, timeout,
// non-2xx status, or malformed body is reported as ERROR; the caller is
// responsible for charging the breaker.
func (c *Client) Crack(ctx context.Context, endpointURL string, req wire.CrackRequest) ChunkOutcome {
	var resp wire.CrackResponse
	httpResp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		ForceContentType("application/json").
		Post(endpointURL + "/crack")
	if err != nil || httpResp.IsError() {
		return ChunkOutcome{Status: wire.StatusError}
	}
	return ChunkOutcome{Status: resp.Status, Password: resp.Password}
}

// Cancel broadcasts a best-effort cancel to endpoint. Failures are not
// charged to the breaker: an unreachable minion simply never sets its
// local flag, which is harmless once the job is already DONE.
func (c *Client) Cancel(ctx context.Context, endpointURL, jobID string) error {
	httpResp, err := c.http.R().
		SetContext(ctx).
		SetBody(wire.CancelRequest{JobID: jobID}).
		Post(endpointURL + "/cancel")
	if err != nil {
		return fmt.Errorf("cancel %s: %w", endpointURL, err)
	}
	if httpResp.IsError() {
		return fmt.Errorf("cancel %s: status %d", endpointURL, httpResp.StatusCode())
	}
	return nil
}

// Health probes endpoint's /health.
func (c *Client) Health(ctx context.Context, endpointURL string) error {
	httpResp, err := c.http.R().SetContext(ctx).Get(endpointURL + "/health")
	if err != nil {
		return fmt.Errorf("health %s: %w", endpointURL, err)
	}
	if httpResp.IsError() {
		return fmt.Errorf("health %s: status %d", endpointURL, httpResp.StatusCode())
	}
	return nil
}
