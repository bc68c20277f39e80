// Package files provides file-related functionality organized into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Source discovery, pattern counting and content fingerprints
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/autocheck/internal/files/filesystem"
//	    "github.com/vvka-141/autocheck/internal/files/scanner"
//	)
//
//	fileScanner := scanner.NewScannerWithFS(filesystem.NewOSFileSystem())
//	match, err := fileScanner.ScanForPattern("./src", rules.Any, []string{".ts", ".tsx"})
//
// The in-memory filesystem backs the scanner, project and service tests.
package files
