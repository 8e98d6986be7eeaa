package instrumentation

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultServiceName is reported as service.name unless OTEL_SERVICE_NAME overrides it.
const DefaultServiceName = "google-workspace-mcp"

// Config holds the OpenTelemetry settings for the server.
type Config struct {
	ServiceName    string
	ServiceVersion string

	// ServiceInstanceID defaults to the hostname when empty.
	ServiceInstanceID string

	// Enabled turns metrics and tracing on. INSTRUMENTATION_ENABLED=false
	// yields a provider whose recorders are all no-ops.
	Enabled bool

	// MetricsExporter is one of prometheus, otlp or stdout.
	MetricsExporter string

	// TracingExporter is one of otlp, stdout or none.
	TracingExporter string

	// OTLPEndpoint is host:port without a scheme.
	OTLPEndpoint string

	// OTLPInsecure disables TLS for OTLP export. Development only.
	OTLPInsecure bool

	// TraceSamplingRate is the parent-based ratio in [0, 1].
	TraceSamplingRate float64

	// DetailedLabels adds the user domain to tool metrics.
	DetailedLabels bool

	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig controls the per-invocation audit stream.
type AuditLoggingConfig struct {
	Enabled bool

	// IncludePII logs the configured user address instead of its hash.
	IncludePII bool
}

// DefaultConfig reads the configuration from the process environment.
func DefaultConfig() Config {
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from the given lookup function. Unparseable
// values fall back to their defaults.
func ConfigFromEnv(getenv func(string) string) Config {
	env := envReader{getenv: getenv}
	return Config{
		ServiceName:       env.str("OTEL_SERVICE_NAME", DefaultServiceName),
		ServiceVersion:    "unknown",
		ServiceInstanceID: env.str("OTEL_SERVICE_INSTANCE_ID", ""),
		Enabled:           env.boolean("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   env.str("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   env.str("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      env.str("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      env.boolean("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: env.float("OTEL_TRACES_SAMPLER_ARG", 0.1),
		DetailedLabels:    env.boolean("METRICS_DETAILED_LABELS", false),
		AuditLogging: AuditLoggingConfig{
			Enabled:    env.boolean("AUDIT_LOGGING_ENABLED", true),
			IncludePII: env.boolean("AUDIT_LOGGING_INCLUDE_PII", false),
		},
	}
}

// Validate checks exporter names, the sampling ratio and the OTLP endpoint.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.OTLPEndpoint == "" && (c.TracingExporter == ExporterOTLP || c.MetricsExporter == ExporterOTLP) {
		return fmt.Errorf("OTLP endpoint is required when an OTLP exporter is selected")
	}
	return nil
}

type envReader struct {
	getenv func(string) string
}

func (e envReader) str(key, def string) string {
	if v := e.getenv(key); v != "" {
		return v
	}
	return def
}

func (e envReader) boolean(key string, def bool) bool {
	v, err := strconv.ParseBool(e.getenv(key))
	if err != nil {
		return def
	}
	return v
}

func (e envReader) float(key string, def float64) float64 {
	v, err := strconv.ParseFloat(e.getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

// Label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	ServiceGmail    = "gmail"
	ServiceCalendar = "calendar"
	ServiceUser     = "user"

	OperationList    = "list"
	OperationGet     = "get"
	OperationSearch  = "search"
	OperationSend    = "send"
	OperationCreate  = "create"
	OperationSession = "session"

	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"

	DefaultMetricInterval = 10 * time.Second
)
