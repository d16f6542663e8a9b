package login

import (
	"context"

	"github.com/socotra/jwtkit/prompt"
)

// Sandbox demo credentials offered as defaults for interactive tenant login.
const (
	demoUsername = "alice.lee"
	demoPassword = "socotra"
)

// Asker asks interactive questions.
type Asker interface {
	Ask(questions []prompt.Question) prompt.Answers
}

// Interactive asks for the API URL and credentials, checks the API URL,
// asks for the tenant when mode needs one, and then logs in. Values in
// defaults pre-fill the answers. The credentials actually used are
// returned alongside the result.
func (c *Client) Interactive(ctx context.Context, asker Asker, mode Mode, defaults Credentials) (*Result, Credentials, error) {
	username, password := defaults.Username, defaults.Password
	if mode == ModeTenant {
		if username == "" {
			username = demoUsername
		}
		if password == "" {
			password = demoPassword
		}
	}

	answers := asker.Ask([]prompt.Question{
		{Name: "api", Message: "API URL (for POST /account/authenticate*):", Default: defaults.APIURL},
		{Name: "username", Message: "Socotra username:", Default: username},
		{Name: "password", Message: "Socotra password:", Default: password, Secret: true},
	})
	creds := Credentials{
		APIURL:   answers["api"],
		Username: answers["username"],
		Password: answers["password"],
		Tenant:   defaults.Tenant,
	}

	if err := c.CheckAPI(ctx, creds.APIURL); err != nil {
		return nil, creds, err
	}

	if mode.NeedsTenant() {
		tenant := asker.Ask([]prompt.Question{
			{Name: "tenant", Message: "Socotra tenant:", Default: defaults.Tenant},
		})
		creds.Tenant = tenant["tenant"]
	}

	result, err := c.Login(ctx, mode, creds)
	return result, creds, err
}
