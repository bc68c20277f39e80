package project

import (
	"regexp"
	"strings"
)

// ESLintConfigFiles are looked up in order.
var ESLintConfigFiles = []string{
	".eslintrc",
	".eslintrc.js",
	".eslintrc.cjs",
	".eslintrc.json",
	".eslintrc.yml",
	".eslintrc.yaml",
	"eslint.config.js",
	"eslint.config.mjs",
	"eslint.config.cjs",
	"eslint.config.ts",
}

// ESLintConfig is the first ESLint config found and whether it mentions rule.
type ESLintConfig struct {
	File    string
	HasRule bool
}

// FindESLintConfig returns ok=false when no ESLint config exists.
func (p *Project) FindESLintConfig(rule string) (ESLintConfig, bool) {
	name, ok := p.firstExisting(ESLintConfigFiles)
	if !ok {
		return ESLintConfig{}, false
	}
	content, _ := p.read(name)
	return ESLintConfig{File: name, HasRule: rule != "" && strings.Contains(content, rule)}, true
}

// BundlerKind identifies the build tool.
type BundlerKind string

const (
	BundlerNone    BundlerKind = ""
	BundlerVite    BundlerKind = "vite"
	BundlerWebpack BundlerKind = "webpack"
)

var (
	viteConfigFiles    = []string{"vite.config.ts", "vite.config.js", "vite.config.mjs"}
	webpackConfigFiles = []string{"webpack.config.js", "webpack.config.ts"}
)

// Bundler describes the detected bundler. TypeScriptReady is true for vite,
// which compiles TypeScript natively, and for a webpack config whose content
// matches the loader pattern.
type Bundler struct {
	Kind            BundlerKind
	ConfigFile      string
	TypeScriptReady bool
}

// DetectBundler prefers vite over webpack. A nil loaderPattern never matches.
func (p *Project) DetectBundler(loaderPattern *regexp.Regexp) Bundler {
	if name, ok := p.firstExisting(viteConfigFiles); ok {
		return Bundler{Kind: BundlerVite, ConfigFile: name, TypeScriptReady: true}
	}
	if name, ok := p.firstExisting(webpackConfigFiles); ok {
		content, _ := p.read(name)
		ready := loaderPattern != nil && loaderPattern.MatchString(content)
		return Bundler{Kind: BundlerWebpack, ConfigFile: name, TypeScriptReady: ready}
	}
	return Bundler{}
}

// Manifest is the raw text of package.json.
type Manifest struct {
	Content string
}

// ReadManifest returns ok=false when package.json is missing or unreadable.
func (p *Project) ReadManifest() (Manifest, bool) {
	content, ok := p.read(ManifestFile)
	return Manifest{Content: content}, ok
}

// HasScript reports whether a `"name":` key appears anywhere in the manifest.
func (m Manifest) HasScript(name string) bool {
	return hasKey(m.Content, name)
}

// HasDependency is HasScript under another name: the match is the same
// textual key search.
func (m Manifest) HasDependency(name string) bool {
	return hasKey(m.Content, name)
}

func hasKey(content, key string) bool {
	return regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:`).MatchString(content)
}

// NodeModulesDir holds installed dependencies.
const NodeModulesDir = "node_modules"

// HasNodeModules reports whether dependencies appear to be installed.
func (p *Project) HasNodeModules() bool {
	return p.Exists(NodeModulesDir)
}

var versionRe = regexp.MustCompile(`"version"\s*:\s*"([^"]+)"`)

// TypeScriptVersion reads the installed compiler's version, or "" when
// typescript is not installed.
func (p *Project) TypeScriptVersion() string {
	content, ok := p.read(NodeModulesDir + "/typescript/" + ManifestFile)
	if !ok {
		return ""
	}
	if m := versionRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}
