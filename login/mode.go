package login

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Mode selects which authentication endpoint is used.
type Mode string

const (
	// ModeAdmin authenticates a platform administrator.
	ModeAdmin Mode = "admin"

	// ModeAdminTenant authenticates an administrator against one tenant.
	ModeAdminTenant Mode = "admin+tenant"

	// ModeTenant authenticates a tenant user.
	ModeTenant Mode = "tenant"
)

// askSuffix marks a non-interactive variant of a mode.
const askSuffix = "-ask"

var (
	// ErrSSOUnsupported is returned for any SSO login mode.
	ErrSSOUnsupported = errors.New("SSO login is not supported")

	// ErrUnknownMode is returned for unrecognized login modes.
	ErrUnknownMode = errors.New("unknown login mode")
)

// Modes lists the supported modes.
var Modes = []Mode{ModeAdmin, ModeAdminTenant, ModeTenant}

// ParseMode parses a login mode. A "-ask" suffix selects the
// non-interactive variant, reported by interactive=false. The empty
// string means interactive tenant login.
func ParseMode(s string) (mode Mode, interactive bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeTenant, true, nil
	}
	if strings.HasPrefix(s, "sso") {
		return "", false, fmt.Errorf("%w: %s", ErrSSOUnsupported, s)
	}

	interactive = true
	if base, ok := strings.CutSuffix(s, askSuffix); ok {
		s, interactive = base, false
	}

	for _, m := range Modes {
		if Mode(s) == m {
			return m, interactive, nil
		}
	}
	return "", false, fmt.Errorf("%w: %s", ErrUnknownMode, s)
}

// NeedsTenant reports whether the mode authenticates against a tenant.
func (m Mode) NeedsTenant() bool {
	return m == ModeTenant || m == ModeAdminTenant
}

// Endpoint returns the authentication URL for mode under apiURL.
func Endpoint(apiURL string, mode Mode, tenant string) string {
	base := strings.TrimRight(apiURL, "/") + "/account/authenticate"
	query := "?hostName=" + url.QueryEscape(tenant)
	switch mode {
	case ModeAdmin:
		return base + "Admin"
	case ModeAdminTenant:
		return base + "Admin" + query
	default:
		return base + query
	}
}
