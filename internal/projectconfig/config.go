// Package projectconfig provides the ProjectConfig struct and loader for
// .explaincheck.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the project configuration file.
const FileName = ".explaincheck.yaml"

// maxSearchDepth bounds how many directories Load walks up.
const maxSearchDepth = 10

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultFormat  = "text"
	DefaultWorkers = 4

	DefaultCaptureLogPath = ".explaincheck/capture.jsonl"
	DefaultSessionDir     = ".explaincheck/sessions"
)

// DefaultsConfig holds default evaluate parameters.
type DefaultsConfig struct {
	Format     string `yaml:"format,omitempty"`
	Workers    int    `yaml:"workers,omitempty"`
	Verbose    *bool  `yaml:"verbose,omitempty"`
	SessionLog *bool  `yaml:"session_log,omitempty"`
}

// CaptureConfig holds process-input capture settings.
type CaptureConfig struct {
	LogPath string `yaml:"log_path,omitempty"`
}

// SessionConfig holds session log settings.
type SessionConfig struct {
	Dir      string `yaml:"dir,omitempty"`
	Compress *bool  `yaml:"compress,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .explaincheck.yaml.
type ProjectConfig struct {
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Capture  CaptureConfig  `yaml:"capture,omitempty"`
	Session  SessionConfig  `yaml:"session,omitempty"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Defaults: DefaultsConfig{
			Format:     DefaultFormat,
			Workers:    DefaultWorkers,
			Verbose:    boolPtr(false),
			SessionLog: boolPtr(false),
		},
		Capture: CaptureConfig{
			LogPath: DefaultCaptureLogPath,
		},
		Session: SessionConfig{
			Dir:      DefaultSessionDir,
			Compress: boolPtr(false),
		},
	}
}

// Verbose reports the effective defaults.verbose value.
func (c *ProjectConfig) Verbose() bool {
	return c.Defaults.Verbose != nil && *c.Defaults.Verbose
}

// SessionLog reports the effective defaults.session_log value.
func (c *ProjectConfig) SessionLog() bool {
	return c.Defaults.SessionLog != nil && *c.Defaults.SessionLog
}

// CompressSessions reports the effective session.compress value.
func (c *ProjectConfig) CompressSessions() bool {
	return c.Session.Compress != nil && *c.Session.Compress
}

// Load finds .explaincheck.yaml by walking up from startDir, unmarshals it,
// and fills in missing fields with defaults. The file is validated by the
// supplied validate func first, when non-nil.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string, validate func([]byte) []string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	if validate != nil {
		if errs := validate(data); len(errs) > 0 {
			return nil, &InvalidConfigError{Path: path, Problems: errs}
		}
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.Path = path
	return cfg, nil
}

// InvalidConfigError reports schema violations in a config file.
type InvalidConfigError struct {
	Path     string
	Problems []string
}

func (e *InvalidConfigError) Error() string {
	msg := fmt.Sprintf("invalid %s:", e.Path)
	for _, p := range e.Problems {
		msg += "\n  " + p
	}
	return msg
}

// findConfigFile walks up from dir looking for FileName.
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range maxSearchDepth {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Defaults.Format != "" {
		dst.Defaults.Format = src.Defaults.Format
	}
	if src.Defaults.Workers != 0 {
		dst.Defaults.Workers = src.Defaults.Workers
	}
	if src.Defaults.Verbose != nil {
		dst.Defaults.Verbose = src.Defaults.Verbose
	}
	if src.Defaults.SessionLog != nil {
		dst.Defaults.SessionLog = src.Defaults.SessionLog
	}

	if src.Capture.LogPath != "" {
		dst.Capture.LogPath = src.Capture.LogPath
	}

	if src.Session.Dir != "" {
		dst.Session.Dir = src.Session.Dir
	}
	if src.Session.Compress != nil {
		dst.Session.Compress = src.Session.Compress
	}
}

func boolPtr(b bool) *bool {
	return &b
}
