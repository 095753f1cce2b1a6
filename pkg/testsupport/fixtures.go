package testsupport

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

const (
	// WorkersCompensation is the four step application used across tests.
	WorkersCompensation = "workers-compensation.json"
	// CyberInsurance is a two step YAML application with a radio dependency.
	CyberInsurance = "cyber-insurance.yaml"
)

// FixturePath returns the absolute path of a file under the repository
// testdata directory.
func FixturePath(name string) string {
	return filepath.Join(repoRoot(), "testdata", name)
}

// LoadApplication loads a schema fixture without requiring testing.T so
// callers can wire fixtures in setup functions.
func LoadApplication(name string) (*schema.Application, error) {
	if name == "" {
		return nil, errors.New("testsupport: fixture name is required")
	}
	app, err := schema.LoadFile(FixturePath(name))
	if err != nil {
		return nil, fmt.Errorf("testsupport: load fixture: %w", err)
	}
	return app, nil
}

// MustLoadApplication loads a schema fixture, failing the test on error.
func MustLoadApplication(t testing.TB, name string) *schema.Application {
	t.Helper()

	app, err := LoadApplication(name)
	if err != nil {
		t.Fatalf("load application: %v", err)
	}
	return app
}

// MustParseApplication parses an inline JSON or YAML schema.
func MustParseApplication(t testing.TB, doc string) *schema.Application {
	t.Helper()

	app, err := schema.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse application: %v", err)
	}
	return app
}

// Diff returns a cmp diff (-want +got), empty when the values match.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

func repoRoot() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
