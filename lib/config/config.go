// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bureau-expand/lib/expand"
	"github.com/bureau-foundation/bureau-expand/sandbox"
)

// EnvironmentVariable names the config file when --config is not given.
const EnvironmentVariable = "BUREAU_EXPAND_CONFIG"

// Config is the complete bureau-expand configuration.
type Config struct {
	// Interpreters overrides the executables for script blocks.
	Interpreters InterpretersConfig `yaml:"interpreters" json:"interpreters"`

	// Sandbox selects how script interpreters are confined.
	Sandbox SandboxConfig `yaml:"sandbox" json:"sandbox"`

	// Embed controls @embed rendering.
	Embed EmbedConfig `yaml:"embed" json:"embed"`

	// Log configures the structured logger.
	Log LogConfig `yaml:"log" json:"log"`
}

// InterpretersConfig holds interpreter executables. Empty means the
// built-in default (bash, python3, perl) found on PATH.
type InterpretersConfig struct {
	Bash   string `yaml:"bash" json:"bash"`
	Python string `yaml:"python" json:"python"`
	Perl   string `yaml:"perl" json:"perl"`
}

// SandboxConfig configures the sandbox wrapper.
type SandboxConfig struct {
	// Disabled runs interpreters directly. Scripts then run with the
	// invoking user's full privileges.
	Disabled bool `yaml:"disabled" json:"disabled"`

	// Tool is "firejail" or "bwrap".
	// Default: firejail
	Tool string `yaml:"tool" json:"tool"`

	// Path overrides the wrapper executable.
	Path string `yaml:"path" json:"path"`

	// Profile names the bubblewrap profile.
	// Default: template
	Profile string `yaml:"profile" json:"profile"`

	// ProfilesFile is a YAML file of extra bubblewrap profiles.
	ProfilesFile string `yaml:"profiles_file" json:"profiles_file"`
}

// EmbedConfig configures @embed rendering.
type EmbedConfig struct {
	// Format is a fmt verb applied to each byte.
	// Default: 0x%02X
	Format string `yaml:"format" json:"format"`

	// Delimiter separates values.
	// Default: ", "
	Delimiter string `yaml:"delimiter" json:"delimiter"`

	// MaxBytes caps @embed without limit(N), as a byte count with an
	// optional unit ("128MiB", "64 kB", "4096").
	// Default: 128MiB
	MaxBytes string `yaml:"max_bytes" json:"max_bytes"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level" json:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	embed := expand.DefaultEmbedFormat()
	return &Config{
		Sandbox: SandboxConfig{
			Tool:    sandbox.ToolFirejail,
			Profile: sandbox.DefaultProfile,
		},
		Embed: EmbedConfig{
			Format:    embed.Format,
			Delimiter: embed.Delimiter,
			MaxBytes:  humanize.IBytes(uint64(embed.MaxBytes)),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by path, or by BUREAU_EXPAND_CONFIG when
// path is empty. With neither set it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path over the
// defaults. Files ending in .json or .jsonc are JSON with comments;
// anything else is YAML. Unknown keys are errors in both formats.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	// Expand ${HOME} and similar variables in paths for portability.
	cfg.expandVariables()

	return cfg, nil
}

// loadFile decodes a single configuration file, merging into the
// current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		return decoder.Decode(c)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		// An empty file leaves the defaults untouched.
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	c.Interpreters.Bash = expandVars(c.Interpreters.Bash)
	c.Interpreters.Python = expandVars(c.Interpreters.Python)
	c.Interpreters.Perl = expandVars(c.Interpreters.Perl)
	c.Sandbox.Path = expandVars(c.Sandbox.Path)
	c.Sandbox.ProfilesFile = expandVars(c.Sandbox.ProfilesFile)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// MaxBytes parses Embed.MaxBytes.
func (c *Config) MaxBytes() (int64, error) {
	value, err := humanize.ParseBytes(c.Embed.MaxBytes)
	if err != nil {
		return 0, fmt.Errorf("embed.max_bytes: %w", err)
	}
	if value == 0 || value > math.MaxInt64 {
		return 0, fmt.Errorf("embed.max_bytes: %q is out of range", c.Embed.MaxBytes)
	}
	return int64(value), nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	switch c.Sandbox.Tool {
	case sandbox.ToolFirejail, sandbox.ToolBwrap:
	default:
		errs = append(errs, fmt.Errorf("sandbox.tool must be one of: %s, %s", sandbox.ToolFirejail, sandbox.ToolBwrap))
	}

	if c.Embed.Format == "" {
		errs = append(errs, fmt.Errorf("embed.format is required"))
	} else if err := expand.CheckFormat(c.Embed.Format); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.MaxBytes(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
