package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = ".autocheck.yaml"

// Environment variables that override file values. CLI flags override both.
const (
	EnvTimeout   = "AUTOCHECK_TIMEOUT"
	EnvCommits   = "AUTOCHECK_COMMITS"
	EnvOutputDir = "AUTOCHECK_OUTPUT_DIR"
)

type ExtensionsConfig struct {
	// TypeScript files are scanned for type-system features and disallowed types.
	TypeScript []string `yaml:"typescript"`
	// Source files are scanned for quality heuristics such as console.log calls.
	Source []string `yaml:"source"`
}

type Thresholds struct {
	MinTypeDeclarations int `yaml:"min_type_declarations"`
	MinGenerics         int `yaml:"min_generics"`
	MinEnums            int `yaml:"min_enums"`
	MinClasses          int `yaml:"min_classes"`
	ConsoleLogWarn      int `yaml:"console_log_warn"`
	CommentedCodeWarn   int `yaml:"commented_code_warn"`
	TodoWarn            int `yaml:"todo_warn"`
	ConventionalGood    int `yaml:"conventional_good_percent"`
	ConventionalFair    int `yaml:"conventional_fair_percent"`
}

type Config struct {
	SourceDirs           []string         `yaml:"source_dirs"`
	Extensions           ExtensionsConfig `yaml:"extensions"`
	ConfigFlags          []string         `yaml:"config_flags"`
	ESLintRule           string           `yaml:"eslint_rule"`
	BundlerLoaderPattern string           `yaml:"bundler_loader_pattern"`
	Typecheck            *bool            `yaml:"typecheck,omitempty"`
	Timeout              string           `yaml:"timeout"`
	RecentCommits        int              `yaml:"recent_commits"`
	OutputDir            string           `yaml:"output_dir,omitempty"`
	ConventionalTypes    []string         `yaml:"conventional_types"`
	UnwantedPatterns     []string         `yaml:"unwanted_patterns"`
	Thresholds           Thresholds       `yaml:"thresholds"`
}

// Defaults returns the configuration used when no .autocheck.yaml exists.
func Defaults() Config {
	typecheck := true
	return Config{
		SourceDirs: []string{"src"},
		Extensions: ExtensionsConfig{
			TypeScript: []string{".ts", ".tsx"},
			Source:     []string{".ts", ".tsx", ".js", ".jsx"},
		},
		ConfigFlags:          []string{"strict", "noImplicitAny"},
		ESLintRule:           "@typescript-eslint/no-explicit-any",
		BundlerLoaderPattern: `ts-loader|esbuild-loader|(?s:babel-loader.*preset-typescript)`,
		Typecheck:            &typecheck,
		Timeout:              autocheck.DefaultToolTimeout.String(),
		RecentCommits:        autocheck.DefaultRecentCommits,
		ConventionalTypes:    []string{"feat", "fix", "docs", "style", "refactor", "test", "chore"},
		UnwantedPatterns: []string{
			"node_modules/", "dist/", "build/", "coverage/",
			".env", ".env.*", "!.env.example", "!.env.sample",
			"*.log",
		},
		Thresholds: Thresholds{
			MinTypeDeclarations: 5,
			MinGenerics:         2,
			MinEnums:            1,
			MinClasses:          1,
			ConsoleLogWarn:      5,
			CommentedCodeWarn:   10,
			TodoWarn:            10,
			ConventionalGood:    autocheck.ConventionalGoodPercent,
			ConventionalFair:    autocheck.ConventionalFairPercent,
		},
	}
}

// Load reads .autocheck.yaml from dir. Fields absent from the file keep their
// default values.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDotEnv loads .env from the working directory if present and reports
// whether it tried. When the working directory is target itself the file
// belongs to the checked project and is left alone. A missing file is not an
// error, and variables already set are never overridden.
func LoadDotEnv(target string) bool {
	cwd, err := os.Getwd()
	if err != nil || samePath(cwd, target) {
		return false
	}
	_ = godotenv.Load()
	return true
}

func samePath(a, b string) bool {
	resolve := func(p string) string {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if real, err := filepath.EvalSymlinks(p); err == nil {
			p = real
		}
		return filepath.Clean(p)
	}
	return resolve(a) == resolve(b)
}

// ApplyEnv overrides file values from AUTOCHECK_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvTimeout); v != "" {
		c.Timeout = v
	}
	if v := getenv(EnvCommits); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q is not a number: %w", EnvCommits, v, autocheck.ErrInvalidConfig)
		}
		c.RecentCommits = n
	}
	if v := getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	return nil
}

// Validate checks value ranges and that patterns compile.
// It returns a multi-error if multiple validation failures occur.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.ToolTimeout(); err != nil {
		errs = append(errs, err)
	}
	if c.RecentCommits < 0 {
		errs = append(errs, fmt.Errorf("recent_commits cannot be negative: %w", autocheck.ErrInvalidConfig))
	}
	if len(c.Extensions.TypeScript) == 0 {
		errs = append(errs, fmt.Errorf("extensions.typescript cannot be empty: %w", autocheck.ErrInvalidConfig))
	}
	if len(c.ConventionalTypes) == 0 {
		errs = append(errs, fmt.Errorf("conventional_types cannot be empty: %w", autocheck.ErrInvalidConfig))
	}
	if c.BundlerLoaderPattern != "" {
		if _, err := regexp.Compile(c.BundlerLoaderPattern); err != nil {
			errs = append(errs, fmt.Errorf("bundler_loader_pattern: %v: %w", err, autocheck.ErrInvalidConfig))
		}
	}
	if c.Thresholds.ConventionalFair > c.Thresholds.ConventionalGood {
		errs = append(errs, fmt.Errorf("conventional_fair_percent (%d) exceeds conventional_good_percent (%d): %w",
			c.Thresholds.ConventionalFair, c.Thresholds.ConventionalGood, autocheck.ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ToolTimeout parses Timeout. An empty value means the default.
func (c *Config) ToolTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return autocheck.DefaultToolTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout %q: %v: %w", c.Timeout, err, autocheck.ErrInvalidConfig)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive: %w", autocheck.ErrInvalidConfig)
	}
	return d, nil
}

// TypecheckEnabled reports whether `tsc --noEmit` should run.
func (c *Config) TypecheckEnabled() bool {
	return c.Typecheck == nil || *c.Typecheck
}

const templateHeader = `# autocheck configuration.
# Every field is optional; omitted fields keep the values shown here.
`

// Template renders the default configuration as YAML for `autocheck init`.
func Template() ([]byte, error) {
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return nil, err
	}
	return append([]byte(templateHeader), data...), nil
}
