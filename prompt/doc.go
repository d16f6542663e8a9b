// Package prompt asks interactive questions with defaults.
//
//	answers := prompt.New().Ask([]prompt.Question{
//	    {Name: "api", Message: "API URL:", Default: "https://api.sandbox.socotra.com"},
//	    {Name: "password", Message: "Socotra password:", Secret: true},
//	})
//
// Secret questions use no-echo input when stdin is a terminal. When input
// is closed or fails, defaults stand in for the unanswered questions.
package prompt
