package google

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// OAuthConfig returns the client configuration for creds against endpoint.
// A zero endpoint selects Google's.
func OAuthConfig(creds Credentials, endpoint oauth2.Endpoint) *oauth2.Config {
	if endpoint.TokenURL == "" {
		endpoint = googleoauth.Endpoint
	}
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       Scopes,
	}
}

// TokenSource returns a caching source that refreshes from the refresh
// token. A supplied access token carries no expiry, so it is used as is
// until the Session drops it; without one the first call refreshes.
func TokenSource(ctx context.Context, conf *oauth2.Config, creds Credentials) oauth2.TokenSource {
	tok := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
	}
	if creds.AccessToken == "" {
		tok.Expiry = time.Unix(1, 0)
	}
	return oauth2.ReuseTokenSource(tok, conf.TokenSource(ctx, tok))
}

// NewHTTPClient returns a client that authorizes every request with ts.
// The transport is pinned to HTTP/1.1; the Google API front ends have
// returned spurious HTTP/2 stream errors on long-lived connections.
func NewHTTPClient(ts oauth2.TokenSource) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.ForceAttemptHTTP2 = false
	base.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}

	return &http.Client{
		Transport: &oauth2.Transport{Source: ts, Base: base},
	}
}
