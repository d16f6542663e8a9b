package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/socotra/jwtkit/config"
	kithttp "github.com/socotra/jwtkit/http"
	"github.com/socotra/jwtkit/login"
	"github.com/socotra/jwtkit/prompt"
	"github.com/socotra/jwtkit/render"
	"github.com/socotra/jwtkit/secret"
)

// Services holds everything a command needs, built once per run.
type Services struct {
	Logger   hclog.Logger
	Config   *config.Resolved
	Profile  string
	Out      *render.Renderer
	Err      *render.Renderer
	Asker    *prompt.Asker
	Gate     *secret.Gate
	Login    *login.Client
	Now      func() time.Time
	Resolver func(profile string) *config.Resolved

	// GitRoot is where a local .socotra.yaml lives, if any.
	GitRoot string
}

// servicesKey is the context key for Services.
type servicesKey struct{}

// WithServices adds Services to the context.
func WithServices(ctx context.Context, svc *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, svc)
}

// ServicesFrom extracts Services from the context.
func ServicesFrom(ctx context.Context) *Services {
	if svc, ok := ctx.Value(servicesKey{}).(*Services); ok {
		return svc
	}
	return nil
}

// MustServices extracts Services or panics.
func MustServices(ctx context.Context) *Services {
	svc := ServicesFrom(ctx)
	if svc == nil {
		panic("jwtkit/cli: Services not found in context")
	}
	return svc
}

// UseProfile re-resolves configuration for another profile. An empty
// name keeps the current one.
func (s *Services) UseProfile(profile string) {
	if profile == "" || profile == s.Profile || s.Resolver == nil {
		return
	}
	s.Profile = profile
	s.Config = s.Resolver(profile)
}

// Format picks the output format: the flag when set, else the configured one.
func (s *Services) Format(flag string) (render.Format, error) {
	if flag == "" {
		flag = s.Config.Get(config.KeyFormat)
	}
	return render.ParseFormat(flag)
}

// newLoginClient builds the platform login client honoring max_retries.
func newLoginClient(logger hclog.Logger, cfg *config.Resolved, httpClient *http.Client) (*login.Client, error) {
	retries, err := cfg.Int(config.KeyMaxRetries)
	if err != nil {
		return nil, err
	}
	opts := []login.Option{login.WithMaxRetries(retries)}
	if httpClient != nil {
		opts = append(opts, login.WithHTTPConfig(kithttp.ClientConfig{
			HTTPClient: httpClient,
			MaxRetries: retries,
		}))
	}
	return login.New(logger.Named("login"), opts...), nil
}
