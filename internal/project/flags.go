package project

import (
	"regexp"
	"strings"
)

// TSConfigFile is the TypeScript compiler configuration.
const TSConfigFile = "tsconfig.json"

// CheckConfigFlag reports whether configFile (relative to the project root)
// sets key to true. A missing file or key, or any other value, is false.
func (p *Project) CheckConfigFlag(configFile, key string) bool {
	content, ok := p.read(configFile)
	if !ok {
		return false
	}
	return FlagEnabled(content, key)
}

// FlagEnabled looks for `"key": true` (quotes optional) on a line that is not
// a // comment.
func FlagEnabled(content, key string) bool {
	re := regexp.MustCompile(`(^|[^\w$])"?` + regexp.QuoteMeta(key) + `"?\s*:\s*true\b`)
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
