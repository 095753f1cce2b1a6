package pongo_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formwizard/pkg/render/template/pongo"
)

func TestEngine_RenderFromFS(t *testing.T) {
	t.Parallel()

	engine, err := pongo.New(pongo.WithFS(fstest.MapFS{
		"templates/hello.tmpl": {Data: []byte("Hello {{ name }}!")},
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	for _, name := range []string{"templates/hello", "templates/hello.tmpl"} {
		got, err := engine.Render(name, map[string]any{"name": "Ada"})
		if err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		if got != "Hello Ada!" {
			t.Fatalf("render %s: unexpected output %q", name, got)
		}
	}
}

func TestEngine_AutoescapesValues(t *testing.T) {
	t.Parallel()

	engine, err := pongo.New(pongo.WithFS(fstest.MapFS{
		"field.tmpl": {Data: []byte(`<input value="{{ value }}">`)},
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.Render("field", map[string]any{"value": `"><script>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected escaped value, got %q", got)
	}
}

func TestEngine_DirTakesPrecedenceOverFS(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "templates", "step.tmpl"), []byte("from disk {{ n }}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	engine, err := pongo.New(
		pongo.WithDir(dir),
		pongo.WithFS(fstest.MapFS{
			"templates/step.tmpl":  {Data: []byte("from fs {{ n }}")},
			"templates/other.tmpl": {Data: []byte("fallback")},
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.Render("templates/step", map[string]any{"n": 1})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "from disk 1" {
		t.Fatalf("expected disk template, got %q", got)
	}
	if got, err := engine.Render("templates/other", nil); err != nil || got != "fallback" {
		t.Fatalf("expected fs fallback, got %q (%v)", got, err)
	}
}

func TestEngine_Errors(t *testing.T) {
	t.Parallel()

	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
	if _, err := pongo.New(pongo.WithDir(filepath.Join(t.TempDir(), "missing"))); err == nil {
		t.Fatalf("expected error for missing dir")
	}

	engine, err := pongo.New(pongo.WithFS(fstest.MapFS{}), pongo.WithExtension("html"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.Render("absent", nil); err == nil || !strings.Contains(err.Error(), "absent.html") {
		t.Fatalf("expected missing template error naming absent.html, got %v", err)
	}
}
