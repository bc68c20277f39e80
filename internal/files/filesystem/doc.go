// Package filesystem provides a read-only filesystem abstraction.
//
// The scanner and the project detectors only ever read a target project, so the
// interfaces here expose opening and walking directories, reading files and
// stat'ing paths. Two providers exist:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for tests
//
// Walks visit entries in lexical order and honor SkipDir, which is how build
// output and dependency folders are excluded.
package filesystem
