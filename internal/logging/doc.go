// Package logging configures slog for the server and provides the attribute
// helpers used by every package.
//
// Setup installs the default logger. Output goes to stderr (stdout belongs to
// the stdio transport) and, optionally, to a rotating file:
//
//	logger, closer, err := logging.Setup(logging.Options{Debug: true, File: "/var/log/gws.log"})
//	defer closer.Close()
//
// Addresses and credentials never appear verbatim in log lines; use UserHash,
// Domain and SanitizeToken.
package logging
