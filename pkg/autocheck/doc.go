// Package autocheck holds the public vocabulary of the autocheck scanner:
// check results, the per-run counters, the interfaces the scan service depends
// on, and the sentinel errors and exit codes the CLI maps them to.
package autocheck
