// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeStandsStill(t *testing.T) {
	c := Fake(epoch)
	if !c.Now().Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", c.Now(), epoch)
	}
	if got := c.Since(epoch); got != 0 {
		t.Errorf("Since(epoch) = %v before any advance, want 0", got)
	}
}

func TestFakeAdvance(t *testing.T) {
	c := Fake(epoch)
	start := c.Now()
	c.Advance(1500 * time.Millisecond)
	c.Advance(500 * time.Millisecond)

	if got := c.Since(start); got != 2*time.Second {
		t.Errorf("Since(start) = %v, want 2s", got)
	}
}

func TestFakeSet(t *testing.T) {
	c := Fake(epoch)
	later := epoch.Add(time.Hour)
	c.Set(later)
	if !c.Now().Equal(later) {
		t.Errorf("Now() = %v, want %v", c.Now(), later)
	}

	defer func() {
		if recover() == nil {
			t.Error("Set to an earlier time did not panic")
		}
	}()
	c.Set(epoch)
}

func TestFakeAdvanceNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Advance(-1) did not panic")
		}
	}()
	Fake(epoch).Advance(-1)
}

func TestRealSince(t *testing.T) {
	c := Real()
	start := c.Now()
	if c.Since(start) < 0 {
		t.Error("Real().Since returned a negative duration")
	}
}
