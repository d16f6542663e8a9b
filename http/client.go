package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultMaxRetries is the default number of retries after the first
// attempt. Requests fail fast unless configured otherwise.
const DefaultMaxRetries = 0

// DefaultRetryWait is the default initial wait between retries.
const DefaultRetryWait = 1 * time.Second

// RequestIDHeader carries the platform's identifier for a request.
const RequestIDHeader = "socotra-request-id"

// slowRTT marks responses worth a louder log line.
const slowRTT = time.Second

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 4 << 10

type seqKey struct{}

// Client is a logging, optionally retrying HTTP client for the Socotra API.
// Each request gets a sequence number unique within the client.
type Client struct {
	client      *retryablehttp.Client
	baseURL     string
	serviceName string
	logger      hclog.Logger
	seq         atomic.Uint64

	// beforeRequest is called before each request (for auth headers, etc.)
	beforeRequest func(req *http.Request)
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	// HTTPClient is the underlying client. Defaults to a pooled cleanhttp
	// client with DefaultTimeout.
	HTTPClient    *http.Client
	BaseURL       string
	ServiceName   string
	MaxRetries    int
	RetryWait     time.Duration
	Logger        hclog.Logger
	BeforeRequest func(req *http.Request)
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		serviceName:   cfg.ServiceName,
		logger:        cfg.Logger,
		beforeRequest: cfg.BeforeRequest,
	}
	if c.serviceName == "" {
		c.serviceName = "socotra"
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
		httpClient.Timeout = DefaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	retryWait := cfg.RetryWait
	if retryWait <= 0 {
		retryWait = DefaultRetryWait
	}

	c.client = &retryablehttp.Client{
		HTTPClient:     httpClient,
		RetryWaitMin:   retryWait,
		RetryWaitMax:   retryWait * 8,
		RetryMax:       maxRetries,
		CheckRetry:     retryablehttp.DefaultRetryPolicy,
		Backoff:        retryablehttp.DefaultBackoff,
		ErrorHandler:   retryablehttp.PassthroughErrorHandler,
		RequestLogHook: c.logRetry,
	}

	return c
}

// Requests returns how many requests this client has issued.
func (c *Client) Requests() uint64 {
	return c.seq.Load()
}

// BaseURL returns the URL that request paths are appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req, logging it and its outcome under the next sequence number.
// Retries follow the client's policy; the final response or error is
// returned as is.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	seq := c.seq.Add(1)
	req = req.WithContext(context.WithValue(req.Context(), seqKey{}, seq))

	if c.beforeRequest != nil {
		c.beforeRequest(req)
	}

	rreq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug(fmt.Sprintf("HTTP #%d: <= %s %s", seq, req.Method, req.URL.Redacted()))
	start := time.Now()
	resp, err := c.client.Do(rreq)
	c.logResult(seq, resp, err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.serviceName, err)
	}
	return resp, nil
}

func (c *Client) logRetry(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 {
		return
	}
	seq, _ := req.Context().Value(seqKey{}).(uint64)
	c.logger.Debug(fmt.Sprintf("HTTP #%d: <> retry %d", seq, attempt))
}

func (c *Client) logResult(seq uint64, resp *http.Response, err error, rtt time.Duration) {
	status, text, requestID := "network", "failure", "none"
	if resp != nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
		text = http.StatusText(resp.StatusCode)
		if id := resp.Header.Get(RequestIDHeader); id != "" {
			requestID = id
		}
	}
	msg := fmt.Sprintf("HTTP #%d: => %s %s (request ID: %s; API RTT: %dms)",
		seq, status, text, requestID, rtt.Milliseconds())

	switch {
	case err != nil:
		c.logger.Warn(msg, "error", err)
	case resp.StatusCode >= 400:
		c.logger.Warn(msg)
	case rtt >= slowRTT:
		c.logger.Info(msg)
	default:
		c.logger.Debug(msg)
	}
}

// Request executes an HTTP request against BaseURL+path with a JSON body.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return c.RequestWithHeaders(ctx, method, path, body, nil)
}

// RequestWithHeaders executes an HTTP request with custom headers.
func (c *Client) RequestWithHeaders(
	ctx context.Context,
	method, path string,
	body any,
	headers map[string]string,
) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.Do(req)
}

// Get performs a GET request and decodes the response into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	resp, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// Post performs a POST request and decodes the response into result.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.PostWithHeaders(ctx, path, body, nil, result)
}

// PostWithHeaders performs a POST request with extra headers and decodes
// the response into result.
func (c *Client) PostWithHeaders(ctx context.Context, path string, body any, headers map[string]string, result any) error {
	resp, err := c.RequestWithHeaders(ctx, http.MethodPost, path, body, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// GetRaw performs a GET request and returns the raw response body.
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.parseError(resp, path)
	}

	return io.ReadAll(resp.Body)
}

// handleResponse checks status and decodes the response body.
func (c *Client) handleResponse(resp *http.Response, path string, result any) error {
	if resp.StatusCode >= 400 {
		return c.parseError(resp, path)
	}

	if result == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", c.serviceName, err)
	}

	return nil
}

// parseError parses an error response into an APIError. Bodies that are
// not JSON are kept as text.
func (c *Client) parseError(resp *http.Response, path string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{
		Service:    c.serviceName,
		StatusCode: resp.StatusCode,
		Endpoint:   path,
		RequestID:  resp.Header.Get(RequestIDHeader),
	}

	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Message != "" {
			apiErr.Message = errResp.Message
		} else if errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
	} else if text := strings.TrimSpace(string(body)); text != "" {
		apiErr.Message = text
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
