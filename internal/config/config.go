package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/harrison/grin/internal/grep"
	"github.com/harrison/grin/internal/opener"
	"github.com/harrison/grin/internal/pattern"
	"github.com/harrison/grin/internal/recognizer"
)

// FileName is the name of the per-user configuration file.
const FileName = ".grin.yaml"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultSkipDirs are the directory names skipped unless overridden.
var DefaultSkipDirs = []string{"CVS", "RCS", ".svn", ".hg", ".bzr", "build", "dist"}

// DefaultSkipExts are the file suffixes skipped unless overridden.
var DefaultSkipExts = []string{
	".pyc", ".pyo", ".so", ".o", ".a", ".tgz", ".tar.gz", ".rar", ".zip",
	"~", "#", ".bak", ".png", ".jpg", ".gif", ".bmp", ".tif", ".tiff",
	".pyd", ".dll", ".exe", ".obj", ".lib",
}

// DefaultListSkipExts are the file suffixes grind skips unless overridden.
// grind lists binaries too, so only build products and archives are left out.
var DefaultListSkipExts = []string{".pyc", ".pyo", ".so", ".o", ".a", ".gz", ".tgz"}

// SkipConfig controls which entries are left out of a walk
type SkipConfig struct {
	// HiddenFiles skips files whose name starts with a dot
	HiddenFiles bool `yaml:"hidden_files"`

	// HiddenDirs skips directories whose name starts with a dot
	HiddenDirs bool `yaml:"hidden_dirs"`

	// BackupFiles skips files ending in "~"
	BackupFiles bool `yaml:"backup_files"`

	// Dirs lists directory basenames to skip
	Dirs []string `yaml:"dirs"`

	// Exts lists file suffixes to skip
	Exts []string `yaml:"exts"`

	// Symlinks skips symbolic links to files and directories
	Symlinks bool `yaml:"symlinks"`

	// Gitignore prunes entries matched by .gitignore files
	Gitignore bool `yaml:"gitignore"`
}

// PythonConfig selects what the python transform keeps
type PythonConfig struct {
	Code     bool `yaml:"code"`
	Comments bool `yaml:"comments"`
	Strings  bool `yaml:"strings"`
}

// Config represents grin configuration options
type Config struct {
	// BeforeContext is the number of lines shown before a match
	BeforeContext int `yaml:"before_context"`

	// AfterContext is the number of lines shown after a match
	AfterContext int `yaml:"after_context"`

	// LineNumbers prefixes output lines with their line number
	LineNumbers bool `yaml:"line_numbers"`

	// Filenames prints a header naming each file with matches
	Filenames bool `yaml:"filenames"`

	// Emacs prints "file:line: text" output
	Emacs bool `yaml:"emacs"`

	// Color is one of auto, always, never
	Color string `yaml:"color"`

	// IgnoreCase makes the pattern case-insensitive
	IgnoreCase bool `yaml:"ignore_case"`

	// Engine selects the regular expression engine (re2, regexp2)
	Engine string `yaml:"engine"`

	// Transform selects the text transform (none, python, imports, markdown)
	Transform string `yaml:"transform"`

	// Python holds the python transform selection
	Python PythonConfig `yaml:"python"`

	// Include is a glob matched against file basenames
	Include string `yaml:"include"`

	// Skip holds the walk exclusion rules
	Skip SkipConfig `yaml:"skip"`

	// BinaryBytes is the number of bytes sniffed from each end of a file
	BinaryBytes int `yaml:"binary_bytes"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// WarnUnreadable prints a summary of unreadable paths after the search
	WarnUnreadable bool `yaml:"warn_unreadable"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LineNumbers: true,
		Filenames:   true,
		Color:       ColorAuto,
		Engine:      string(pattern.EngineRE2),
		Transform:   string(opener.ModeNone),
		Include:     "*",
		Skip: SkipConfig{
			HiddenFiles: true,
			HiddenDirs:  true,
			BackupFiles: true,
			Dirs:        slices.Clone(DefaultSkipDirs),
			Exts:        slices.Clone(DefaultSkipExts),
			Symlinks:    true,
		},
		BinaryBytes: recognizer.DefaultBinaryBytes,
		LogLevel:    "warn",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Keys present in the file override the defaults; absent keys keep them.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .grin.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// UseListDefaults swaps grin's default skip extensions for grind's. A
// configuration file that sets skip.exts is left alone.
func (c *Config) UseListDefaults() {
	if slices.Equal(c.Skip.Exts, DefaultSkipExts) {
		c.Skip.Exts = slices.Clone(DefaultListSkipExts)
	}
}

// Overrides carries command-line values. Non-nil fields replace the
// corresponding configuration value.
type Overrides struct {
	BeforeContext   *int
	AfterContext    *int
	LineNumbers     *bool
	Filenames       *bool
	Emacs           *bool
	Color           *string
	IgnoreCase      *bool
	Engine          *string
	Transform       *string
	PythonCode      *bool
	PythonComments  *bool
	PythonStrings   *bool
	Include         *string
	SkipHiddenFiles *bool
	SkipHiddenDirs  *bool
	SkipBackups     *bool
	SkipDirs        *[]string
	SkipExts        *[]string
	SkipSymlinks    *bool
	Gitignore       *bool
	BinaryBytes     *int
	LogLevel        *string
	WarnUnreadable  *bool
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(o Overrides) {
	set(&c.BeforeContext, o.BeforeContext)
	set(&c.AfterContext, o.AfterContext)
	set(&c.LineNumbers, o.LineNumbers)
	set(&c.Filenames, o.Filenames)
	set(&c.Emacs, o.Emacs)
	set(&c.Color, o.Color)
	set(&c.IgnoreCase, o.IgnoreCase)
	set(&c.Engine, o.Engine)
	set(&c.Transform, o.Transform)
	set(&c.Python.Code, o.PythonCode)
	set(&c.Python.Comments, o.PythonComments)
	set(&c.Python.Strings, o.PythonStrings)
	set(&c.Include, o.Include)
	set(&c.Skip.HiddenFiles, o.SkipHiddenFiles)
	set(&c.Skip.HiddenDirs, o.SkipHiddenDirs)
	set(&c.Skip.BackupFiles, o.SkipBackups)
	set(&c.Skip.Dirs, o.SkipDirs)
	set(&c.Skip.Exts, o.SkipExts)
	set(&c.Skip.Symlinks, o.SkipSymlinks)
	set(&c.Skip.Gitignore, o.Gitignore)
	set(&c.BinaryBytes, o.BinaryBytes)
	set(&c.LogLevel, o.LogLevel)
	set(&c.WarnUnreadable, o.WarnUnreadable)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// ValidLogLevels lists the accepted log_level values
var ValidLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.BeforeContext < 0 {
		return fmt.Errorf("before_context must be >= 0, got %d", c.BeforeContext)
	}
	if c.AfterContext < 0 {
		return fmt.Errorf("after_context must be >= 0, got %d", c.AfterContext)
	}
	if c.BinaryBytes <= 0 {
		return fmt.Errorf("binary_bytes must be > 0, got %d", c.BinaryBytes)
	}

	if !slices.Contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(ValidLogLevels, ", "))
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	if !pattern.ValidEngine(c.Engine) {
		return fmt.Errorf("invalid engine %q, must be one of: re2, regexp2", c.Engine)
	}

	if _, err := opener.ParseMode(c.Transform); err != nil {
		return err
	}

	if c.Include == "" {
		return fmt.Errorf("include cannot be empty")
	}
	if _, err := glob.Compile(c.Include); err != nil {
		return fmt.Errorf("invalid include glob %q: %w", c.Include, err)
	}

	return nil
}

// RecognizerConfig returns the file recognizer settings
func (c *Config) RecognizerConfig() recognizer.Config {
	return recognizer.Config{
		SkipHiddenFiles:    c.Skip.HiddenFiles,
		SkipHiddenDirs:     c.Skip.HiddenDirs,
		SkipBackupFiles:    c.Skip.BackupFiles,
		SkipDirs:           slices.Clone(c.Skip.Dirs),
		SkipExts:           slices.Clone(c.Skip.Exts),
		SkipSymlinkFiles:   c.Skip.Symlinks,
		SkipSymlinkDirs:    c.Skip.Symlinks,
		BinaryBytes:        c.BinaryBytes,
		RespectIgnoreFiles: c.Skip.Gitignore,
	}
}

// GrepOptions returns the grep engine settings. showMatch is false in
// files-with-matches mode.
func (c *Config) GrepOptions(useColor, showMatch bool) grep.Options {
	opts := grep.DefaultOptions()
	opts.BeforeContext = c.BeforeContext
	opts.AfterContext = c.AfterContext
	opts.ShowLineNumbers = c.LineNumbers
	opts.ShowFilename = c.Filenames
	opts.ShowMatch = showMatch
	opts.ShowEmacs = c.Emacs
	opts.UseColor = useColor
	opts.BinaryBytes = c.BinaryBytes
	return opts
}

// PatternOptions returns the pattern compilation settings
func (c *Config) PatternOptions() pattern.Options {
	return pattern.Options{
		Engine:     pattern.Engine(c.Engine),
		IgnoreCase: c.IgnoreCase,
	}
}

// Selector returns the opener selection for the configured transform. With
// the python transform and nothing selected, comments and strings are kept.
func (c *Config) Selector() opener.Selector {
	mode, _ := opener.ParseMode(c.Transform)
	py := opener.PythonOptions{
		KeepCode:     c.Python.Code,
		KeepComments: c.Python.Comments,
		KeepStrings:  c.Python.Strings,
	}
	if !py.Any() {
		py.KeepComments = true
		py.KeepStrings = true
	}
	return opener.Selector{Mode: mode, Python: py}
}
