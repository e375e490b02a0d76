// Package logging provides structured logging for calc-core.
//
// It wraps log/slog with a JSON (production) or text (development) handler,
// level filtering, and default service/version fields on every entry.
//
// Configuration:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Usage:
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("starting service", "port", 3000)
//	logger.Error("failed to open history store", "error", err)
package logging
