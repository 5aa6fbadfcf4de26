// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"os"
	"strings"
)

// ValidationResult holds the result of a validation check.
type ValidationResult struct {
	Name    string
	Passed  bool
	Message string
	Warning bool // True if this is a warning, not an error.
}

// Validator performs pre-flight validation before scripts run.
type Validator struct {
	results []ValidationResult
	errors  int
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		results: make([]ValidationResult, 0),
	}
}

// Results returns all validation results.
func (v *Validator) Results() []ValidationResult {
	return v.results
}

// HasErrors returns true if any validation failed.
func (v *Validator) HasErrors() bool {
	return v.errors > 0
}

// Err returns the first failure as an error, or nil.
func (v *Validator) Err() error {
	for _, result := range v.results {
		if !result.Passed {
			return fmt.Errorf("%s: %s", result.Name, result.Message)
		}
	}
	return nil
}

func (v *Validator) pass(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
	})
}

func (v *Validator) warn(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
		Warning: true,
	})
}

func (v *Validator) fail(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  false,
		Message: message,
	})
	v.errors++
}

// ValidateWrapper checks that the wrapper's executable is present and
// executable. A Direct wrapper passes with a warning.
func (v *Validator) ValidateWrapper(wrapper Wrapper) {
	name := "sandbox"
	executable := wrapper.Executable()
	if executable == "" {
		v.warn(name, "disabled: scripts run with the invoking user's full privileges")
		return
	}

	path, err := LookExecutable(executable)
	if err != nil {
		v.fail(name, fmt.Sprintf("%s not available: %v", wrapper.Name(), err))
		return
	}
	v.pass(name, fmt.Sprintf("%s: %s", wrapper.Name(), path))

	if bwrap, ok := wrapper.(*Bwrap); ok {
		v.ValidateUserNamespaces()
		v.ValidateProfile(bwrap.Profile)
	}
}

// ValidateExecutable checks that an interpreter resolves. Missing
// interpreters are warnings: only templates that use them fail.
func (v *Validator) ValidateExecutable(name, executable string) {
	path, err := LookExecutable(executable)
	if err != nil {
		v.warn(name, fmt.Sprintf("%s not available: %v", executable, err))
		return
	}
	v.pass(name, path)
}

// ValidateUserNamespaces checks that user namespaces are enabled.
func (v *Validator) ValidateUserNamespaces() {
	data, err := os.ReadFile("/proc/sys/kernel/unprivileged_userns_clone")
	if err != nil {
		if os.IsNotExist(err) {
			v.pass("userns", "user namespaces supported (no clone restriction)")
			return
		}
		v.warn("userns", fmt.Sprintf("cannot check user namespace support: %v", err))
		return
	}

	if strings.TrimSpace(string(data)) == "0" {
		v.fail("userns", "unprivileged user namespaces are disabled (set kernel.unprivileged_userns_clone=1)")
		return
	}
	v.pass("userns", "user namespaces enabled")
}

// ValidateProfile checks the profile structure and that required bind
// sources exist.
func (v *Validator) ValidateProfile(profile *Profile) {
	if profile == nil {
		v.fail("profile", "no profile")
		return
	}
	if err := profile.Validate(); err != nil {
		v.fail("profile", err.Error())
		return
	}

	var missing []string
	for _, mount := range profile.Filesystem {
		if mount.Optional {
			continue
		}
		if mount.Type != MountTypeBind && mount.Type != MountTypeDevBind {
			continue
		}
		if !exists(mount.Source) {
			missing = append(missing, mount.Source)
		}
	}
	if len(missing) > 0 {
		v.fail("profile", fmt.Sprintf("%s: missing mount sources: %s", profile.Name, strings.Join(missing, ", ")))
		return
	}

	v.pass("profile", fmt.Sprintf("%s (%d mounts)", profile.Name, len(profile.Filesystem)))
}
