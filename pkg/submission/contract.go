package submission

import (
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// ErrContractMismatch reports a payload that does not fit the application.
var ErrContractMismatch = errors.New("submission: payload does not match contract")

// ContractSchema describes the payload Submit can produce for app as an
// OpenAPI object schema. Text fields accept a string or a number, checkboxes
// a boolean and radio groups one of their member values. Fields without a
// dependency are always present, except radio groups that start unselected.
func ContractSchema(app *schema.Application) *openapi3.Schema {
	object := openapi3.NewObjectSchema()
	object.Title = app.Title()
	noExtra := false
	object.AdditionalProperties = openapi3.AdditionalProperties{Has: &noExtra}

	var required []string
	seen := make(map[string]bool)
	for _, field := range app.Fields() {
		name := field.Base().Name
		if seen[name] {
			continue
		}
		seen[name] = true

		members := app.FieldsByName(name)
		object.WithProperty(name, propertySchema(members))
		if alwaysPresent(members) {
			required = append(required, name)
		}
	}
	sort.Strings(required)
	object.Required = required
	return object
}

// Verify checks values against ContractSchema(app).
func Verify(app *schema.Application, values map[string]any) error {
	if app == nil {
		return fmt.Errorf("%w: application is nil", ErrContractMismatch)
	}
	payload := make(map[string]any, len(values))
	for name, value := range values {
		payload[name] = value
	}
	if err := ContractSchema(app).VisitJSON(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrContractMismatch, err)
	}
	return nil
}

func propertySchema(members []schema.Field) *openapi3.Schema {
	first := members[0]
	var prop *openapi3.Schema
	switch f := first.(type) {
	case schema.TextField:
		prop = openapi3.NewOneOfSchema(openapi3.NewStringSchema(), openapi3.NewFloat64Schema())
	case schema.CheckboxField:
		prop = openapi3.NewBoolSchema()
	case schema.RadioField:
		values := make([]any, 0, len(members))
		for _, member := range members {
			if radio, ok := member.(schema.RadioField); ok {
				values = append(values, radio.Value)
			}
		}
		prop = openapi3.NewStringSchema().WithEnum(values...)
	default:
		panic(fmt.Sprintf("submission: unexpected field %T", f))
	}
	base := first.Base()
	prop.Title = base.Label
	prop.Description = base.Description
	return prop
}

func alwaysPresent(members []schema.Field) bool {
	for _, member := range members {
		if member.Base().DependsOn != nil {
			return false
		}
	}
	if _, isRadio := members[0].(schema.RadioField); !isRadio {
		return true
	}
	for _, member := range members {
		if radio, ok := member.(schema.RadioField); ok && radio.Checked {
			return true
		}
	}
	return false
}
