package login

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	clierrors "github.com/socotra/jwtkit/errors"
	kithttp "github.com/socotra/jwtkit/http"
)

// apiBanner is the body of GET on a Socotra API root.
const apiBanner = "api"

// Credentials identify a user for one login.
type Credentials struct {
	APIURL   string
	Username string
	Password string
	Tenant   string
}

// Result is the platform's answer to a successful login.
type Result struct {
	AuthorizationToken string      `json:"authorizationToken"`
	ExpiresTimestamp   json.Number `json:"expiresTimestamp"`
}

// Expires converts ExpiresTimestamp (milliseconds since the epoch).
// It returns the zero time when the timestamp is missing or invalid.
func (r Result) Expires() time.Time {
	ms, err := strconv.ParseInt(r.ExpiresTimestamp.String(), 10, 64)
	if err != nil {
		f, ferr := r.ExpiresTimestamp.Float64()
		if ferr != nil {
			return time.Time{}
		}
		ms = int64(f)
	}
	return time.UnixMilli(ms).UTC()
}

// Client performs logins over a shared, logging HTTP client.
type Client struct {
	api    *kithttp.Client
	logger hclog.Logger
}

// Option configures a Client.
type Option func(*kithttp.ClientConfig)

// WithHTTPConfig replaces the HTTP client configuration. BaseURL is ignored.
func WithHTTPConfig(cfg kithttp.ClientConfig) Option {
	return func(c *kithttp.ClientConfig) {
		logger := c.Logger
		*c = cfg
		if c.Logger == nil {
			c.Logger = logger
		}
	}
}

// WithMaxRetries sets how often failed requests are retried.
func WithMaxRetries(n int) Option {
	return func(c *kithttp.ClientConfig) {
		c.MaxRetries = n
	}
}

// New returns a Client. URLs are absolute per call, so the HTTP client has
// no base URL.
func New(logger hclog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	cfg := kithttp.ClientConfig{ServiceName: "socotra", Logger: logger.Named("http")}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.BaseURL = ""
	return &Client{api: kithttp.NewClient(cfg), logger: logger}
}

// Login authenticates with HTTP Basic auth and returns the token.
func (c *Client) Login(ctx context.Context, mode Mode, creds Credentials) (*Result, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w for %s login", clierrors.ErrMissingCredentials, mode)
	}
	if mode.NeedsTenant() && creds.Tenant == "" {
		return nil, fmt.Errorf("%s login needs a tenant hostname", mode)
	}

	endpoint := Endpoint(creds.APIURL, mode, creds.Tenant)
	c.logger.Debug("attempting Basic auth", "username", creds.Username, "endpoint", endpoint)

	auth := base64.StdEncoding.EncodeToString([]byte(creds.Username + ":" + creds.Password))
	var result Result
	err := c.api.PostWithHeaders(ctx, endpoint, nil, map[string]string{
		"Authorization": "Basic " + auth,
	}, &result)
	if err != nil {
		var apiErr *kithttp.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: Socotra account credentials may be invalid (or expired/disabled? %s): %w",
				clierrors.ErrNotAuthenticated, apiErr.Message, err)
		}
		return nil, err
	}
	if result.AuthorizationToken == "" {
		return nil, fmt.Errorf("login response from %s has no authorizationToken", endpoint)
	}

	c.logger.Debug("token will expire", "expires", result.Expires().Format(time.RFC3339))
	return &result, nil
}

// CheckAPI verifies that apiURL answers like a Socotra API.
func (c *Client) CheckAPI(ctx context.Context, apiURL string) error {
	if !strings.HasPrefix(apiURL, "http") {
		return fmt.Errorf("%w: %q (e.g. https://api.sandbox.socotra.com)", clierrors.ErrInvalidAPIURL, apiURL)
	}

	c.logger.Debug("validating API URL", "url", apiURL)
	body, err := c.api.GetRaw(ctx, apiURL)
	if err != nil {
		var apiErr *kithttp.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%w: %s: %w", clierrors.ErrInvalidAPIURL, apiURL, err)
		}
		return err
	}
	if text := strings.TrimSpace(string(body)); text != apiBanner {
		return fmt.Errorf("%w: %s answered %q", clierrors.ErrInvalidAPIURL, apiURL, truncate(text, 64))
	}
	return nil
}

// FindTenant looks up a tenant's locator by hostname.
func (c *Client) FindTenant(ctx context.Context, apiURL, hostname string) (string, error) {
	endpoint := strings.TrimRight(apiURL, "/") + "/tenant/v1/findByHostname?hostname=" + url.QueryEscape(hostname)

	var result struct {
		TenantID string `json:"tenantId"`
	}
	if err := c.api.Get(ctx, endpoint, &result); err != nil {
		return "", err
	}
	c.logger.Debug("found tenant", "locator", result.TenantID, "hostname", hostname)
	return result.TenantID, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
