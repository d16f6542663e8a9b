// Package login obtains tokens from the Socotra account endpoints.
//
// Three modes are supported: admin, admin+tenant and tenant. Each has a
// non-interactive "-ask" variant that logs in with configured credentials
// only. SSO modes are rejected.
//
//	client := login.New(logger)
//	result, err := client.Login(ctx, login.ModeTenant, login.Credentials{
//	    APIURL:   "https://api.sandbox.socotra.com",
//	    Username: "alice.lee",
//	    Password: "socotra",
//	    Tenant:   "alice.co.sandbox.socotra.com",
//	})
package login
