// Package errors turns login and API failures into terminal-friendly
// errors.
//
// CLIError carries a message, optional details and a suggestion. The
// wrap helpers classify an error (auth, permission, connection, TLS,
// timeout, invalid API URL) and pick text from an ErrorMessenger:
//
//	token, err := client.Login(ctx, mode, creds)
//	if err != nil {
//	    return errors.Wrap(err, creds.APIURL)
//	}
//
// The sentinels stay reachable through errors.Is on the wrapped value.
package errors
