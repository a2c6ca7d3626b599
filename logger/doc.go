// Package logger provides structured logging for rxbridge using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("bridge")
//	log.Debug("subscription established", logger.Fields(logger.FieldStreamID, id))
package logger
