// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so that durations
// reported by the expander are deterministic under test.
//
// Production code holds a Clock field and measures with Now and Since.
// In production, Real() provides the standard library behavior. In
// tests, Fake() returns a clock that stands still until Advance is
// called:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	engine, _ := script.New(script.Config{Clock: c})
package clock
