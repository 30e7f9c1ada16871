// Package promapi is a thin client for the Prometheus HTTP API: it lists
// metric names and executes instant and range queries, decoding the JSON
// responses into typed structures.
package promapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	promconfig "github.com/prometheus/common/config"
	"github.com/prometheus/common/model"
)

// DefaultTimeout bounds each request; both calls a run makes are blocking
// and sequential, so a stuck server would otherwise hang the prompt forever.
const DefaultTimeout = 10 * time.Second

// DefaultServer is the server address used when none is configured.
const DefaultServer = "http://localhost:9090"

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL  string // full API base, e.g. "http://localhost:9090/api/v1"
	Username string // basic auth, optional
	Password string
	Insecure bool // skip TLS certificate verification
	Timeout  time.Duration
}

// Client issues read-only GET requests against one Prometheus API base URL.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient builds a Client whose HTTP transport handles basic auth and TLS
// settings.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = APIBase(DefaultServer)
	}

	cfg := promconfig.HTTPClientConfig{
		TLSConfig: promconfig.TLSConfig{InsecureSkipVerify: opts.Insecure},
	}
	if opts.Username != "" || opts.Password != "" {
		cfg.BasicAuth = &promconfig.BasicAuth{
			Username: opts.Username,
			Password: promconfig.Secret(opts.Password),
		}
	}
	hc, err := promconfig.NewClientFromConfig(cfg, "promapi")
	if err != nil {
		return nil, fmt.Errorf("building HTTP client: %w", err)
	}
	hc.Timeout = opts.Timeout
	if hc.Timeout <= 0 {
		hc.Timeout = DefaultTimeout
	}

	return &Client{baseURL: base, hc: hc}, nil
}

// APIBase normalizes a server address into the /api/v1 base path, leaving
// addresses that already carry it untouched.
func APIBase(server string) string {
	b := strings.TrimRight(server, "/")
	if strings.HasSuffix(b, "/api/v1") {
		return b
	}
	return b + "/api/v1"
}

// MetricNames fetches every known metric name, in server order, by listing
// the values of the reserved __name__ label.
func (c *Client) MetricNames(ctx context.Context) ([]string, error) {
	endpoint := c.baseURL + "/label/" + url.PathEscape(model.MetricNameLabel) + "/values"
	env, err := c.getJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: errors.New("missing data field")}
	}
	var names []string
	if err := json.Unmarshal(env.Data, &names); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return names, nil
}

// Query executes an instant query. The expression is passed through
// verbatim (URL-encoded); whether it parses is the server's concern.
func (c *Client) Query(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("query", query)
	endpoint := c.baseURL + "/query?" + params.Encode()

	raw, err := c.resultJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var results []Result
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return results, nil
}

// QueryRange executes a range query over [start, end] at the given step.
func (c *Client) QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration) ([]RangeResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("start", start.UTC().Format(time.RFC3339))
	params.Set("end", end.UTC().Format(time.RFC3339))
	params.Set("step", step.String())
	endpoint := c.baseURL + "/query_range?" + params.Encode()

	raw, err := c.resultJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var series []RangeResult
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return series, nil
}

// resultJSON fetches endpoint and digs out the data.result array common to
// both query endpoints.
func (c *Client) resultJSON(ctx context.Context, endpoint string) (json.RawMessage, error) {
	env, err := c.getJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: errors.New("missing data field")}
	}
	var data struct {
		ResultType string          `json:"resultType"`
		Result     json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	if data.Result == nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: errors.New("missing result field")}
	}
	return data.Result, nil
}

// getJSON performs one GET and decodes the response envelope. A body the
// server labels as an error decodes fine but still fails the call.
func (c *Client) getJSON(ctx context.Context, endpoint string) (*apiEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("HTTP %d: %w", resp.StatusCode, err)}
		}
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	if env.Status != "" && !strings.EqualFold(env.Status, "success") {
		msg := env.Error
		if msg == "" {
			msg = "status " + env.Status
		}
		if env.ErrorType != "" {
			msg = env.ErrorType + ": " + msg
		}
		return nil, &DecodeError{Endpoint: endpoint, Err: errors.New("server reported " + msg)}
	}
	return &env, nil
}
