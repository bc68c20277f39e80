// Package rules holds the line-oriented patterns autocheck counts.
//
// Every rule is a regular expression applied to one source line at a time.
// Nothing here parses TypeScript: a declaration split across lines, or a
// keyword inside a string literal, is miscounted. That profile is accepted;
// the checks are advisory.
package rules

import (
	"regexp"

	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// Rule names, used as report labels and as keys in tests.
const (
	NameAny           = "any"
	NameInterface     = "interface"
	NameTypeAlias     = "type alias"
	NameEnum          = "enum"
	NameGeneric       = "generic"
	NameClass         = "class"
	NamePrivate       = "private"
	NamePublic        = "public"
	NameProtected     = "protected"
	NameConsoleLog    = "console.log"
	NameTodo          = "TODO/FIXME"
	NameCommentedCode = "commented-out code"
)

var (
	// Any matches the explicit any escape hatch in annotations, assertions,
	// generic arguments and array types.
	Any = autocheck.Rule{
		Name:         NameAny,
		Pattern:      regexp.MustCompile(`(:\s*any\b|\bas\s+any\b|<\s*any\s*[,>]|,\s*any\s*>|\bany\s*\[\])`),
		SkipComments: true,
	}

	Interface = autocheck.Rule{
		Name:         NameInterface,
		Pattern:      regexp.MustCompile(`^\s*(export\s+)?(default\s+)?(declare\s+)?interface\s+[A-Za-z_$][\w$]*`),
		SkipComments: true,
	}

	TypeAlias = autocheck.Rule{
		Name:         NameTypeAlias,
		Pattern:      regexp.MustCompile(`^\s*(export\s+)?(declare\s+)?type\s+[A-Za-z_$][\w$]*\s*(<.*>)?\s*=`),
		SkipComments: true,
	}

	Enum = autocheck.Rule{
		Name:         NameEnum,
		Pattern:      regexp.MustCompile(`^\s*(export\s+)?(declare\s+)?(const\s+)?enum\s+[A-Za-z_$][\w$]*`),
		SkipComments: true,
	}

	// Generic matches a type parameter list opened right after a function,
	// interface, type or class name, or a generic arrow function assigned to
	// a const. The arrow form must be followed by "(" so JSX elements such as
	// <Button> are not counted.
	Generic = autocheck.Rule{
		Name: NameGeneric,
		Pattern: regexp.MustCompile(
			`\b(function\s*[\w$]*|interface\s+[\w$]+|type\s+[\w$]+|class\s+[\w$]+)\s*<\s*[A-Z][\w$]*\s*(extends\b|=|,|>)` +
				`|\bconst\s+[\w$]+\s*(:[^=]+)?=\s*(async\s*)?<\s*[A-Z][\w$]*(\s+extends\s+[^>,]+)?(\s*,\s*([A-Z][\w$]*(\s+extends\s+[^>,]+)?)?)*\s*>\s*\(`),
		SkipComments: true,
	}

	Class = autocheck.Rule{
		Name:         NameClass,
		Pattern:      regexp.MustCompile(`^\s*(export\s+)?(default\s+)?(abstract\s+)?class\s+[A-Za-z_$][\w$]*`),
		SkipComments: true,
	}

	Private = modifier(NamePrivate)
	Public  = modifier(NamePublic)
	// Protected counts the protected access modifier.
	Protected = modifier(NameProtected)

	ConsoleLog = autocheck.Rule{
		Name:         NameConsoleLog,
		Pattern:      regexp.MustCompile(`\bconsole\.log\s*\(`),
		SkipComments: true,
	}

	// Todo is meant for comments, so comment lines are not skipped.
	Todo = autocheck.Rule{
		Name:    NameTodo,
		Pattern: regexp.MustCompile(`\b(TODO|FIXME)\b`),
	}

	// CommentedCode flags a // comment whose body starts with a declaration
	// keyword or contains =, ( or {. Triple-slash directives are not comments
	// in this sense and never match.
	CommentedCode = autocheck.Rule{
		Name:    NameCommentedCode,
		Pattern: regexp.MustCompile(`^\s*//\s*((function|const|let)\b|[^/\s].*[=({]|[=({])`),
	}
)

func modifier(keyword string) autocheck.Rule {
	return autocheck.Rule{
		Name:         keyword,
		Pattern:      regexp.MustCompile(`(^|[\s(,])` + keyword + `\s+(readonly\s+|static\s+|async\s+|abstract\s+)*[A-Za-z_$#][\w$]*`),
		SkipComments: true,
	}
}

// TypeScriptFeatures are counted over TypeScript files.
func TypeScriptFeatures() []autocheck.Rule {
	return []autocheck.Rule{Interface, TypeAlias, Enum, Generic, Class, Private, Public, Protected}
}

// Matches applies rule to a single line. comment reports whether the line
// holds only comment text in its file (see checksum.CommentLines); rules
// with SkipComments never match such lines.
func Matches(rule autocheck.Rule, line string, comment bool) bool {
	if rule.SkipComments && comment {
		return false
	}
	return rule.Pattern.MatchString(line)
}
