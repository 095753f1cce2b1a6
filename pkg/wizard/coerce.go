package wizard

import (
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// coerce normalizes value and checks it against the kind of the fields that
// own the name. Names shared by several fields always belong to one radio
// group; the loader rejects any other collision.
func coerce(fields []schema.Field, value any) (any, error) {
	normalized, err := schema.NormalizeValue(value)
	if err != nil {
		return nil, err
	}

	switch owner := fields[0].(type) {
	case schema.TextField:
		switch normalized.(type) {
		case string, float64:
			return normalized, nil
		}
		return nil, fmt.Errorf("text field %q takes a string or number, got %T", owner.Name, value)
	case schema.CheckboxField:
		if _, ok := normalized.(bool); ok {
			return normalized, nil
		}
		return nil, fmt.Errorf("checkbox %q takes a boolean, got %T", owner.Name, value)
	case schema.RadioField:
		selected, ok := normalized.(string)
		if ok {
			for _, field := range fields {
				if member, isRadio := field.(schema.RadioField); isRadio && member.Value == selected {
					return selected, nil
				}
			}
		}
		return nil, fmt.Errorf("radio group %q has no member %#v", owner.Name, value)
	default:
		return nil, fmt.Errorf("unsupported field %T", owner)
	}
}
