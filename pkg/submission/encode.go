// Package submission hands a completed wizard payload to the outside world:
// it encodes the collected values, writes them through a Submitter and
// describes their shape as an OpenAPI schema.
package submission

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-formwizard/pkg/validation"
)

// Format selects a payload encoding.
type Format string

const (
	// FormatJSON emits application/json with keys in sorted order.
	FormatJSON Format = "json"
	// FormatForm emits application/x-www-form-urlencoded.
	FormatForm Format = "form"
	// FormatPretty emits sorted name=value lines for terminals.
	FormatPretty Format = "pretty"
)

// ParseFormat validates a flag value. Empty means JSON.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatForm, FormatPretty:
		return f, nil
	default:
		return "", fmt.Errorf("submission: unknown format %q", value)
	}
}

// ContentType returns the MIME type of format.
func ContentType(format Format) string {
	switch format {
	case FormatForm:
		return "application/x-www-form-urlencoded"
	case FormatPretty:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Encode serializes values in format. Output is deterministic.
func Encode(values map[string]any, format Format) ([]byte, error) {
	switch format {
	case FormatForm:
		return []byte(encodeForm(values)), nil
	case FormatPretty:
		return []byte(encodePretty(values)), nil
	case FormatJSON, "":
		if values == nil {
			values = map[string]any{}
		}
		out, err := gojson.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("submission: encode json: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("submission: unknown format %q", format)
	}
}

func encodeForm(values map[string]any) string {
	form := url.Values{}
	for name, value := range values {
		form.Set(name, validation.Stringify(value))
	}
	return form.Encode()
}

func encodePretty(values map[string]any) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%s\n", name, validation.Stringify(values[name]))
	}
	return b.String()
}
