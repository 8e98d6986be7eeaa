package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/google-workspace-mcp/internal/gmail"
	"github.com/teemow/google-workspace-mcp/internal/server"
)

// ProfileURI is the URI of the user profile resource.
const ProfileURI = "user://profile"

// UserProfile is the content of the user profile resource.
type UserProfile struct {
	// Email is the configured GOOGLE_USER_EMAIL, which may be empty.
	Email   string        `json:"email"`
	Mailbox gmail.Profile `json:"mailbox"`
}

// RegisterUserResources registers resources describing the configured user.
func RegisterUserResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	profileResource := mcp.NewResource(
		ProfileURI,
		"Current User Profile",
		mcp.WithResourceDescription("The configured Google account and its mailbox counters"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(profileResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleUserProfile(ctx, request, sc)
	})

	return nil
}

func handleUserProfile(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	svc, err := sc.GmailService(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := svc.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	jsonData, err := json.MarshalIndent(UserProfile{Email: sc.UserEmail(), Mailbox: profile}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
