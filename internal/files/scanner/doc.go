// Package scanner walks a source tree and counts lines matching pattern rules.
//
// The walk is lexical and skips dependency, build output and hidden
// directories. Matching is line based; see package rules for the patterns
// and their known blind spots.
//
// Scanner reads through filesystem.FileSystemProvider so tests can run
// against an in-memory tree.
package scanner
