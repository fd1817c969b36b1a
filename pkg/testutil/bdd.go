package testutil

import "testing"

// Given, When, Then and And name subtests after scenario steps, so a failure
// reads as the step that broke.
func Given(t *testing.T, desc string, fn func(t *testing.T)) { step(t, "Given", desc, fn) }

func When(t *testing.T, desc string, fn func(t *testing.T)) { step(t, "When", desc, fn) }

func Then(t *testing.T, desc string, fn func(t *testing.T)) { step(t, "Then", desc, fn) }

func And(t *testing.T, desc string, fn func(t *testing.T)) { step(t, "And", desc, fn) }

// step stops the enclosing scenario when a step fails; later steps depend on
// state the failed one was meant to produce.
func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) {
	t.Helper()
	if !t.Run(keyword+" "+desc, fn) {
		t.FailNow()
	}
}
