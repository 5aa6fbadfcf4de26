// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Profile defines the bubblewrap confinement for template scripts.
type Profile struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Inherit     string            `yaml:"inherit,omitempty"`
	Filesystem  []Mount           `yaml:"filesystem,omitempty"`
	Namespaces  NamespaceConfig   `yaml:"namespaces,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	Security    SecurityConfig    `yaml:"security,omitempty"`
	CreateDirs  []string          `yaml:"create_dirs,omitempty"`
}

// Mount defines a filesystem mount in the sandbox. Mounts are applied
// in order, so later entries shadow earlier ones.
type Mount struct {
	Source   string `yaml:"source,omitempty"`
	Dest     string `yaml:"dest"`
	Mode     string `yaml:"mode,omitempty"`
	Type     string `yaml:"type,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

// MountType constants for the Type field.
const (
	MountTypeBind    = ""         // Default: bind mount
	MountTypeTmpfs   = "tmpfs"    // tmpfs mount
	MountTypeProc    = "proc"     // /proc
	MountTypeDev     = "dev"      // /dev (minimal)
	MountTypeDevBind = "dev-bind" // Device node bind
)

// MountMode constants for the Mode field.
const (
	MountModeRO = "ro" // Read-only
	MountModeRW = "rw" // Read-write
)

// NamespaceConfig defines which namespaces to unshare.
type NamespaceConfig struct {
	PID    bool `yaml:"pid"`
	Net    bool `yaml:"net"`
	IPC    bool `yaml:"ipc"`
	UTS    bool `yaml:"uts"`
	Cgroup bool `yaml:"cgroup"`
	User   bool `yaml:"user"`
}

// SecurityConfig defines process-level restrictions.
type SecurityConfig struct {
	NewSession    bool `yaml:"new_session"`
	DieWithParent bool `yaml:"die_with_parent"`
}

// Clone creates a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	clone := &Profile{
		Name:        p.Name,
		Description: p.Description,
		Inherit:     p.Inherit,
		Namespaces:  p.Namespaces,
		Security:    p.Security,
	}

	if p.Filesystem != nil {
		clone.Filesystem = make([]Mount, len(p.Filesystem))
		copy(clone.Filesystem, p.Filesystem)
	}
	if p.CreateDirs != nil {
		clone.CreateDirs = make([]string, len(p.CreateDirs))
		copy(clone.CreateDirs, p.CreateDirs)
	}
	if p.Environment != nil {
		clone.Environment = make(map[string]string, len(p.Environment))
		for k, v := range p.Environment {
			clone.Environment[k] = v
		}
	}

	return clone
}

// mergeProfiles merges child profile settings into parent. A child
// mount replaces the parent mount with the same destination in place;
// new destinations are appended, so mount order stays stable.
func mergeProfiles(parent, child *Profile) *Profile {
	result := parent.Clone()
	result.Name = child.Name
	result.Inherit = ""

	if child.Description != "" {
		result.Description = child.Description
	}

	for _, mount := range child.Filesystem {
		replaced := false
		for i := range result.Filesystem {
			if result.Filesystem[i].Dest == mount.Dest {
				result.Filesystem[i] = mount
				replaced = true
				break
			}
		}
		if !replaced {
			result.Filesystem = append(result.Filesystem, mount)
		}
	}

	if child.Namespaces != (NamespaceConfig{}) {
		result.Namespaces = child.Namespaces
	}

	if len(child.Environment) > 0 {
		if result.Environment == nil {
			result.Environment = make(map[string]string)
		}
		for k, v := range child.Environment {
			result.Environment[k] = v
		}
	}

	if child.Security != (SecurityConfig{}) {
		result.Security = child.Security
	}

	for _, dir := range child.CreateDirs {
		present := false
		for _, existing := range result.CreateDirs {
			if existing == dir {
				present = true
				break
			}
		}
		if !present {
			result.CreateDirs = append(result.CreateDirs, dir)
		}
	}

	return result
}

// Variables holds the variable values for expansion in profiles.
type Variables map[string]string

var variablePattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Expand expands variables in a string using ${VAR} syntax.
// Falls back to environment variables if not in the Variables map.
// Unknown variables are left as written.
func (v Variables) Expand(s string) string {
	return variablePattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := v[name]; ok {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return match
	})
}

// ExpandProfile expands all variables in a profile.
func (v Variables) ExpandProfile(p *Profile) *Profile {
	result := p.Clone()

	for i := range result.Filesystem {
		result.Filesystem[i].Source = v.Expand(result.Filesystem[i].Source)
		result.Filesystem[i].Dest = v.Expand(result.Filesystem[i].Dest)
	}
	for key, value := range result.Environment {
		result.Environment[key] = v.Expand(value)
	}
	for i := range result.CreateDirs {
		result.CreateDirs[i] = v.Expand(result.CreateDirs[i])
	}

	return result
}

// DefaultVariables returns the variables available to every profile.
func DefaultVariables() Variables {
	home, _ := os.UserHomeDir()
	return Variables{
		"HOME": home,
		"TERM": os.Getenv("TERM"),
	}
}

// Validate checks that a profile is well formed.
func (p *Profile) Validate() error {
	var errors []string

	for i, m := range p.Filesystem {
		if m.Dest == "" {
			errors = append(errors, fmt.Sprintf("filesystem[%d]: dest is required", i))
		}
		switch m.Type {
		case MountTypeBind, MountTypeDevBind:
			if m.Source == "" {
				errors = append(errors, fmt.Sprintf("filesystem[%d]: source is required for bind mounts", i))
			}
		case MountTypeTmpfs, MountTypeProc, MountTypeDev:
		default:
			errors = append(errors, fmt.Sprintf("filesystem[%d]: unknown mount type %q", i, m.Type))
		}
		if m.Mode != "" && m.Mode != MountModeRO && m.Mode != MountModeRW {
			errors = append(errors, fmt.Sprintf("filesystem[%d]: invalid mode %q (must be ro or rw)", i, m.Mode))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("profile %q validation failed:\n  %s", p.Name, strings.Join(errors, "\n  "))
	}
	return nil
}
