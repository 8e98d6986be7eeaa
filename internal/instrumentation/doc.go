// Package instrumentation wires OpenTelemetry metrics and tracing into the
// server and writes the tool audit log.
//
// Metrics:
//   - http_requests_total, http_request_duration_seconds (HTTP transport)
//   - google_api_operations_total, google_api_operation_duration_seconds
//   - google_session_init_total
//   - mcp_tool_invocations_total, mcp_tool_duration_seconds
//
// Spans are named tool.<name> for tool calls and google.<service>.<operation>
// for upstream calls.
//
// Configuration comes from the environment: INSTRUMENTATION_ENABLED,
// METRICS_EXPORTER (prometheus, otlp, stdout), TRACING_EXPORTER (otlp,
// stdout, none), OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE,
// OTEL_TRACES_SAMPLER_ARG, OTEL_SERVICE_NAME, METRICS_DETAILED_LABELS,
// AUDIT_LOGGING_ENABLED and AUDIT_LOGGING_INCLUDE_PII.
package instrumentation
