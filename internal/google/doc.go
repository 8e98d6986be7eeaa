// Package google owns the authenticated connection to the Google APIs.
//
// Credentials come from the environment (CredentialsFromEnv). A Session turns
// them into Gmail and Calendar clients on first use and keeps them until
// Invalidate is called. The access token is refreshed from the refresh
// token by golang.org/x/oauth2; no authorization-code flow is performed
// and nothing is written to disk.
package google
