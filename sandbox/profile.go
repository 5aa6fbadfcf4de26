// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ProfilesConfig is the document format of a profiles file.
type ProfilesConfig struct {
	Profiles map[string]*Profile `yaml:"profiles"`
}

// ParseProfilesConfig parses a YAML profiles document. Each profile's
// Name is set from its key.
func ParseProfilesConfig(data []byte) (*ProfilesConfig, error) {
	var config ProfilesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}
	for name, profile := range config.Profiles {
		if profile == nil {
			return nil, fmt.Errorf("profile %q is empty", name)
		}
		profile.Name = name
	}
	return &config, nil
}

// LoadProfilesConfig reads and parses a profiles file.
func LoadProfilesConfig(path string) (*ProfilesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProfilesConfig(data)
}

// ProfileLoader loads and resolves sandbox profiles.
type ProfileLoader struct {
	configs  []*ProfilesConfig
	resolved map[string]*Profile
	logger   *slog.Logger
}

// NewProfileLoader creates a new profile loader.
func NewProfileLoader() *ProfileLoader {
	return &ProfileLoader{
		resolved: make(map[string]*Profile),
	}
}

// SetLogger enables verbose logging during profile loading.
func (l *ProfileLoader) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// log is a helper that only logs if a logger is configured.
func (l *ProfileLoader) log(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

// LoadDefaults loads the built-in default profiles.
func (l *ProfileLoader) LoadDefaults() error {
	config, err := ParseProfilesConfig([]byte(defaultProfilesYAML))
	if err != nil {
		return fmt.Errorf("failed to parse default profiles: %w", err)
	}
	l.configs = append(l.configs, config)
	l.log("loaded default profiles", "count", len(config.Profiles))
	return nil
}

// LoadFile loads profiles from a YAML file. Profiles in later files
// override same-named profiles loaded earlier.
func (l *ProfileLoader) LoadFile(path string) error {
	config, err := LoadProfilesConfig(path)
	if err != nil {
		return err
	}
	l.configs = append(l.configs, config)
	l.resolved = make(map[string]*Profile)
	l.log("loaded profiles from file", "path", path, "count", len(config.Profiles))
	return nil
}

// Resolve resolves a profile by name, applying inheritance.
func (l *ProfileLoader) Resolve(name string) (*Profile, error) {
	return l.resolve(name, map[string]bool{})
}

func (l *ProfileLoader) resolve(name string, visiting map[string]bool) (*Profile, error) {
	if profile, ok := l.resolved[name]; ok {
		return profile, nil
	}
	if visiting[name] {
		return nil, fmt.Errorf("profile inheritance cycle at %q", name)
	}
	visiting[name] = true

	// Last definition wins.
	var base *Profile
	for _, config := range l.configs {
		if profile, ok := config.Profiles[name]; ok {
			base = profile
		}
	}
	if base == nil {
		return nil, fmt.Errorf("profile not found: %s", name)
	}

	var profile *Profile
	if base.Inherit != "" {
		parent, err := l.resolve(base.Inherit, visiting)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent profile %q: %w", base.Inherit, err)
		}
		profile = mergeProfiles(parent, base)
	} else {
		profile = base.Clone()
	}

	l.resolved[name] = profile
	l.log("profile resolved",
		"name", name,
		"mounts", len(profile.Filesystem),
		"env_vars", len(profile.Environment),
	)
	return profile, nil
}

// List returns all available profile names.
func (l *ProfileLoader) List() []string {
	names := make(map[string]bool)
	for _, config := range l.configs {
		for name := range config.Profiles {
			names[name] = true
		}
	}

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// defaultProfilesYAML contains the built-in profile definitions.
const defaultProfilesYAML = `
profiles:
  template:
    description: "Read-only view of the host, private /tmp, no network"
    filesystem:
      - source: /
        dest: /
        mode: ro
      - type: dev
        dest: /dev
      - type: proc
        dest: /proc
      - type: tmpfs
        dest: /tmp
      - type: tmpfs
        dest: /run
    namespaces:
      pid: true
      net: true
      ipc: true
      uts: true
    environment:
      PATH: "/usr/local/bin:/usr/bin:/bin"
      HOME: "/tmp"
      LANG: "C.UTF-8"
      TERM: "${TERM}"
    security:
      new_session: true
      die_with_parent: true

  template-net:
    description: "Like template, but scripts may use the network"
    inherit: template
    namespaces:
      pid: true
      net: false
      ipc: true
      uts: true
    filesystem:
      - source: /etc/resolv.conf
        dest: /etc/resolv.conf
        mode: ro
        optional: true
`
