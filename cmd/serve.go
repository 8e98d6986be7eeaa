package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/teemow/google-workspace-mcp/internal/google"
	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
	"github.com/teemow/google-workspace-mcp/internal/logging"
	"github.com/teemow/google-workspace-mcp/internal/resources"
	"github.com/teemow/google-workspace-mcp/internal/server"
	"github.com/teemow/google-workspace-mcp/internal/tools/calendar_tools"
	"github.com/teemow/google-workspace-mcp/internal/tools/gmail_tools"
	"github.com/teemow/google-workspace-mcp/internal/tools/user_tools"
)

// ServerName is the MCP implementation name reported to clients.
const ServerName = "mcp-server-google-workspace"

const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"

	defaultEnvFile = ".env"
)

// serveOptions holds the serve flags after environment fallbacks.
type serveOptions struct {
	transport string
	httpAddr  string
	readOnly  bool

	debug     bool
	logFormat string
	logFile   string
	envFile   string

	googleClientID     string
	googleClientSecret string

	metricsEnabled bool
	metricsAddr    string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server providing Gmail and Google
Calendar tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport on /mcp, with /healthz and /readyz

Read-only mode:
  --read-only (or READ_ONLY=true) hides gmail_send_email and
  calendar_create_event.

Every flag below that names an environment variable falls back to it when the
flag is not given. A .env file in the working directory, or the file passed
with --env-file, is loaded first; variables already set in the environment
take precedence over it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(opts.envFile); err != nil {
				return err
			}
			if err := applyEnvOverrides(cmd.Flags(), &opts, os.Getenv); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&opts.readOnly, "read-only", false, "Hide tools that send email or create events. Can also use READ_ONLY env var.")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", logging.FormatText, "Log format: text or json. Can also use LOG_FORMAT env var.")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Also write logs to this file, rotated by size. Can also use LOG_FILE env var.")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Load environment variables from this dotenv file (default: .env if present)")
	cmd.Flags().StringVar(&opts.googleClientID, "google-client-id", "", "Google OAuth Client ID. Can also use GOOGLE_CLIENT_ID env var.")
	cmd.Flags().StringVar(&opts.googleClientSecret, "google-client-secret", "", "Google OAuth Client Secret. Can also use GOOGLE_CLIENT_SECRET env var.")
	cmd.Flags().BoolVar(&opts.metricsEnabled, "metrics-enabled", true, "Serve Prometheus metrics on a dedicated port (streamable-http only). Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. With no path, a missing .env is not an
// error.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides fills every option whose flag was not set explicitly
// from its environment variable.
func applyEnvOverrides(flags *pflag.FlagSet, opts *serveOptions, getenv func(string) string) error {
	str := func(flag, key string, dst *string) {
		if flags.Changed(flag) {
			return
		}
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	boolean := func(flag, key string, dst *bool) error {
		if flags.Changed(flag) {
			return nil
		}
		v := getenv(key)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q (expected true/false)", key, v)
		}
		*dst = b
		return nil
	}

	str("log-format", "LOG_FORMAT", &opts.logFormat)
	str("log-file", "LOG_FILE", &opts.logFile)
	str("google-client-id", google.EnvClientID, &opts.googleClientID)
	str("google-client-secret", google.EnvClientSecret, &opts.googleClientSecret)
	str("metrics-addr", "METRICS_ADDR", &opts.metricsAddr)

	return errors.Join(
		boolean("read-only", "READ_ONLY", &opts.readOnly),
		boolean("metrics-enabled", "METRICS_ENABLED", &opts.metricsEnabled),
	)
}

// credentialLookup reads credentials from the environment, with the client
// id and secret flags taking precedence.
func credentialLookup(opts serveOptions, getenv func(string) string) func(string) string {
	return func(key string) string {
		switch {
		case key == google.EnvClientID && opts.googleClientID != "":
			return opts.googleClientID
		case key == google.EnvClientSecret && opts.googleClientSecret != "":
			return opts.googleClientSecret
		}
		return getenv(key)
	}
}

func runServe(ctx context.Context, opts serveOptions) (err error) {
	if opts.transport != transportStdio && opts.transport != transportStreamableHTTP {
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", opts.transport)
	}

	logger, logCloser, err := logging.Setup(logging.Options{
		Debug:  opts.debug,
		Format: opts.logFormat,
		File:   opts.logFile,
	})
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, logCloser.Close()) }()

	creds, err := google.CredentialsFromEnv(credentialLookup(opts, os.Getenv))
	if err != nil {
		return err
	}
	if creds.UserEmail == "" {
		logger.Warn("GOOGLE_USER_EMAIL is not set, user_get_email will fail")
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), server.DefaultShutdownTimeout)
		defer cancel()
		err = errors.Join(err, provider.Shutdown(shutdownCtx))
	}()

	session := google.NewSession(creds,
		google.WithLogger(logging.NewSlogAdapter(logger)),
		google.WithMetrics(provider.Metrics()),
	)

	serverContext, err := server.NewServerContext(ctx, session,
		server.WithLogger(logger),
		server.WithMetrics(provider.Metrics()),
		server.WithAuditLogger(instrumentation.NewAuditLogger(logger, instrConfig.AuditLogging)),
		server.WithReadOnly(opts.readOnly),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() { err = errors.Join(err, serverContext.Shutdown()) }()

	mcpSrv := newMCPServer()
	if err := registerAll(mcpSrv, serverContext); err != nil {
		return err
	}

	logger.Info("starting MCP server",
		slog.String("name", ServerName),
		slog.String("version", version),
		slog.String("transport", opts.transport),
		slog.Bool("read_only", opts.readOnly),
	)

	switch opts.transport {
	case transportStreamableHTTP:
		return runStreamableHTTPServer(ctx, mcpSrv, serverContext, provider, opts)
	default:
		return runStdioServer(ctx, mcpSrv, logger)
	}
}

func newMCPServer() *mcpserver.MCPServer {
	return mcpserver.NewMCPServer(ServerName, version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithRecovery(),
	)
}

// registerAll registers every tool group and resource. Read-only mode is
// taken from the server context.
func registerAll(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext) error {
	registrations := []struct {
		name     string
		register func(*mcpserver.MCPServer, *server.ServerContext) error
	}{
		{"Gmail", gmail_tools.RegisterGmailTools},
		{"Calendar", calendar_tools.RegisterCalendarTools},
		{"User", user_tools.RegisterUserTools},
		{"User Resources", resources.RegisterUserResources},
	}

	for _, reg := range registrations {
		if err := reg.register(mcpSrv, sc); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}
	return nil
}

func runStdioServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, logger *slog.Logger) error {
	stdio := mcpserver.NewStdioServer(mcpSrv)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(
	ctx context.Context,
	mcpSrv *mcpserver.MCPServer,
	sc *server.ServerContext,
	provider *instrumentation.Provider,
	opts serveOptions,
) error {
	httpServer := server.NewHTTPServer(mcpSrv, sc, server.HTTPServerConfig{
		Addr:    opts.httpAddr,
		Version: version,
	})

	var metricsServer *server.MetricsServer
	if opts.metricsEnabled && provider.MetricsHandler() != nil {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.metricsAddr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
	} else if opts.metricsEnabled {
		sc.Logger().Info("metrics server disabled, instrumentation is off or not using the prometheus exporter")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(httpServer.Start)
	if metricsServer != nil {
		g.Go(metricsServer.Start)
	}
	g.Go(func() error {
		<-gctx.Done()
		sc.Logger().Info("shutting down HTTP servers")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), server.DefaultShutdownTimeout)
		defer cancel()

		var errs []error
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
