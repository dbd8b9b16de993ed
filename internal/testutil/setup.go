// Package testutil holds shared helpers for package tests.
package testutil

import (
	"io"
	"testing"
	"time"

	"github.com/VoidMesh/strata/internal/logging"
	"github.com/charmbracelet/log"
)

// TestConfig controls SetupTest.
type TestConfig struct {
	// Verbose keeps log output on stderr.
	Verbose bool
}

func DefaultTestConfig() TestConfig {
	return TestConfig{}
}

// SetupTest silences logging for the duration of a test and returns a cleanup
// function restoring the previous loggers.
func SetupTest(t *testing.T, cfg TestConfig) func() {
	t.Helper()

	prevGlobal := logging.Logger
	prevDefault := log.Default()
	if !cfg.Verbose {
		logging.Logger = log.New(io.Discard)
		log.SetDefault(log.New(io.Discard))
	}

	return func() {
		logging.Logger = prevGlobal
		log.SetDefault(prevDefault)
	}
}

// Eventually polls cond until it holds or timeout elapses.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %v: %s", timeout, msg)
}
