package google

import (
	"strings"

	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// Environment variable names.
const (
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvRefreshToken = "GOOGLE_REFRESH_TOKEN"
	EnvAccessToken  = "GOOGLE_ACCESS_TOKEN"
	EnvUserEmail    = "GOOGLE_USER_EMAIL"
)

// Credentials are the OAuth client and user tokens the server runs with.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// AccessToken is optional; when empty the first call refreshes.
	AccessToken string

	// UserEmail is optional and only reported back by the user tools.
	UserEmail string
}

// CredentialsFromEnv reads Credentials through lookup, typically os.Getenv.
// Every missing required variable is named in the returned configuration
// error.
func CredentialsFromEnv(lookup func(string) string) (Credentials, error) {
	get := func(key string) string { return strings.TrimSpace(lookup(key)) }

	creds := Credentials{
		ClientID:     get(EnvClientID),
		ClientSecret: get(EnvClientSecret),
		RefreshToken: get(EnvRefreshToken),
		AccessToken:  get(EnvAccessToken),
		UserEmail:    get(EnvUserEmail),
	}

	var missing []string
	for _, req := range []struct{ key, value string }{
		{EnvClientID, creds.ClientID},
		{EnvClientSecret, creds.ClientSecret},
		{EnvRefreshToken, creds.RefreshToken},
	} {
		if req.value == "" {
			missing = append(missing, req.key)
		}
	}
	if len(missing) > 0 {
		return Credentials{}, workspace.Configuration("Missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return creds, nil
}
