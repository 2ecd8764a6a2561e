// Package log provides flake's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Internally it is backed by the standard
// library's slog via a bridge handler that feeds a Formatter and a set of
// Outputs, so slog-aware code and this facade produce identical lines.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("server"))
//	l.Info("server started", log.Str("grpc", ":50051"))
//
// # Configuration
//
// ApplyConfig builds a logger from a declarative Config (level, text/json
// format, stderr/stdout/null output).
//
// # Interop
//
// ToStdLogger and RedirectStdLog adapt the facade for libraries that write to
// the standard library's *log.Logger.
package log
