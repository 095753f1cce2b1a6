package schema

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type rawApplication struct {
	ID       string    `mapstructure:"id"`
	Category string    `mapstructure:"category"`
	Title    string    `mapstructure:"title"`
	Steps    []rawStep `mapstructure:"steps"`
}

type rawStep struct {
	ID          string     `mapstructure:"id"`
	Title       string     `mapstructure:"title"`
	Description string     `mapstructure:"description"`
	Fields      []rawField `mapstructure:"fields"`
}

type rawField struct {
	ID          string         `mapstructure:"id"`
	Kind        string         `mapstructure:"kind"`
	Name        string         `mapstructure:"name"`
	Label       string         `mapstructure:"label"`
	Description string         `mapstructure:"description"`
	Required    bool           `mapstructure:"required"`
	Disabled    bool           `mapstructure:"disabled"`
	DependsOn   *rawDependency `mapstructure:"dependsOn"`
	Type        string         `mapstructure:"type"`
	Placeholder string         `mapstructure:"placeholder"`
	Value       any            `mapstructure:"value"`
	Checked     bool           `mapstructure:"checked"`
	Rules       []rawRule      `mapstructure:"rules"`
}

type rawDependency struct {
	FieldName  string `mapstructure:"fieldName"`
	FieldValue any    `mapstructure:"fieldValue"`
}

type rawRule struct {
	Type  string `mapstructure:"type"`
	Error string `mapstructure:"error"`
}

// Load builds an Application from a generic document, typically the result
// of decoding JSON or YAML into map[string]any. Any structural defect fails
// the whole load; no partial Application is returned.
func Load(raw map[string]any) (*Application, error) {
	if len(raw) == 0 {
		return nil, loadErrf("", ErrInvalidDocument, "document is empty")
	}

	var doc rawApplication
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("schema: configure decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, loadErrf("", ErrInvalidDocument, "%v", err)
	}
	return build(doc)
}

// Parse decodes JSON (or, failing that, YAML) bytes and loads the result.
func Parse(data []byte) (*Application, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, loadErrf("", ErrInvalidDocument, "document is empty")
	}

	var raw map[string]any
	if err := gojson.Unmarshal(data, &raw); err == nil {
		return Load(raw)
	}

	raw = nil
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, loadErrf("", ErrInvalidDocument, "not valid JSON or YAML")
	}
	return Load(raw)
}

// LoadFile reads and parses the schema at path.
func LoadFile(path string) (*Application, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	app, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load %s: %w", path, err)
	}
	return app, nil
}

// LoadFS reads and parses the schema at path inside fsys.
func LoadFS(fsys fs.FS, path string) (*Application, error) {
	if fsys == nil {
		return nil, fmt.Errorf("schema: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	app, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load %s: %w", path, err)
	}
	return app, nil
}
