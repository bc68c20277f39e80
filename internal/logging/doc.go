// Package logging provides concrete implementations of the autocheck.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed plain-text lines to stderr
//   - StructuredLogger: Writes JSON lines to stderr through zap (--log-format json)
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
