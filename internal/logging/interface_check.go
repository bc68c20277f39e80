package logging

import "github.com/vvka-141/autocheck/pkg/autocheck"

var (
	_ autocheck.Logger = (*ConsoleLogger)(nil)
	_ autocheck.Logger = (*NullLogger)(nil)
	_ autocheck.Logger = (*StructuredLogger)(nil)
)
