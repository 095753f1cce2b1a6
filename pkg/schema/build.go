package schema

import (
	"fmt"
	"strings"
)

type located struct {
	path  string
	field Field
}

func build(doc rawApplication) (*Application, error) {
	category := Category(strings.TrimSpace(doc.Category))
	if !category.Valid() {
		return nil, loadErrf("category", ErrUnknownCategory, "%q", doc.Category)
	}
	if strings.TrimSpace(doc.ID) == "" {
		return nil, loadErr("id", ErrMissingID)
	}
	if len(doc.Steps) == 0 {
		return nil, loadErr("steps", ErrNoSteps)
	}

	app := &Application{
		id:       doc.ID,
		category: category,
		title:    doc.Title,
		steps:    make([]Step, 0, len(doc.Steps)),
		byName:   make(map[string][]Field),
	}

	stepIDs := make(map[string]string, len(doc.Steps))
	fieldIDs := make(map[string]string)
	var all []located

	for si, rs := range doc.Steps {
		stepPath := fmt.Sprintf("steps[%d]", si)
		if strings.TrimSpace(rs.ID) == "" {
			return nil, loadErr(stepPath+".id", ErrMissingID)
		}
		if prev, exists := stepIDs[rs.ID]; exists {
			return nil, loadErrf(stepPath+".id", ErrDuplicateStepID, "%q already declared at %s", rs.ID, prev)
		}
		stepIDs[rs.ID] = stepPath

		step := Step{
			ID:          rs.ID,
			Title:       rs.Title,
			Description: rs.Description,
			Fields:      make([]Field, 0, len(rs.Fields)),
		}

		for fi, rf := range rs.Fields {
			fieldPath := fmt.Sprintf("%s.fields[%d]", stepPath, fi)
			field, err := buildField(rf, fieldPath)
			if err != nil {
				return nil, err
			}

			base := field.Base()
			if prev, exists := fieldIDs[base.ID]; exists {
				return nil, loadErrf(fieldPath+".id", ErrDuplicateFieldID, "%q already declared at %s", base.ID, prev)
			}
			fieldIDs[base.ID] = fieldPath

			if existing := app.byName[base.Name]; len(existing) > 0 {
				if existing[0].Kind() != KindRadio || field.Kind() != KindRadio {
					return nil, loadErrf(fieldPath+".name", ErrDuplicateFieldName, "%q", base.Name)
				}
			}
			app.byName[base.Name] = append(app.byName[base.Name], field)

			step.Fields = append(step.Fields, field)
			all = append(all, located{path: fieldPath, field: field})
		}

		app.steps = append(app.steps, step)
	}

	// Dependencies resolve against the whole application, so they can only be
	// checked once every step is known.
	for _, item := range all {
		dep := item.field.Base().DependsOn
		if dep == nil {
			continue
		}
		if _, ok := app.byName[dep.FieldName]; !ok {
			return nil, loadErrf(item.path+".dependsOn.fieldName", ErrDanglingDependency, "%q", dep.FieldName)
		}
	}

	return app, nil
}

func buildField(rf rawField, path string) (Field, error) {
	common, err := buildCommon(rf, path)
	if err != nil {
		return nil, err
	}

	switch Kind(rf.Kind) {
	case KindText:
		return buildText(rf, common, path)
	case KindCheckbox:
		field := CheckboxField{Common: common}
		switch v := rf.Value.(type) {
		case nil:
		case bool:
			field.Default = &v
		default:
			return nil, loadErrf(path+".value", ErrMalformedField, "checkbox default must be a boolean, got %T", rf.Value)
		}
		return field, nil
	case KindRadio:
		value, ok := rf.Value.(string)
		if !ok || value == "" {
			return nil, loadErrf(path+".value", ErrMalformedField, "radio option value must be a non-empty string")
		}
		return RadioField{Common: common, Value: value, Checked: rf.Checked}, nil
	case "":
		return nil, loadErrf(path+".kind", ErrUnknownKind, "kind is required")
	default:
		return nil, loadErrf(path+".kind", ErrUnknownKind, "%q", rf.Kind)
	}
}

func buildCommon(rf rawField, path string) (Common, error) {
	if strings.TrimSpace(rf.ID) == "" {
		return Common{}, loadErr(path+".id", ErrMissingID)
	}
	if strings.TrimSpace(rf.Name) == "" {
		return Common{}, loadErrf(path+".name", ErrMalformedField, "name is required")
	}

	common := Common{
		ID:          rf.ID,
		Name:        rf.Name,
		Label:       rf.Label,
		Description: rf.Description,
		Required:    rf.Required,
		Disabled:    rf.Disabled,
	}

	if rf.DependsOn != nil {
		if strings.TrimSpace(rf.DependsOn.FieldName) == "" {
			return Common{}, loadErrf(path+".dependsOn.fieldName", ErrMalformedField, "fieldName is required")
		}
		value, err := NormalizeValue(rf.DependsOn.FieldValue)
		if err != nil {
			return Common{}, loadErr(path+".dependsOn.fieldValue", err)
		}
		if value == nil {
			return Common{}, loadErrf(path+".dependsOn.fieldValue", ErrMalformedField, "fieldValue is required")
		}
		common.DependsOn = &Dependency{FieldName: rf.DependsOn.FieldName, FieldValue: value}
	}

	return common, nil
}

func buildText(rf rawField, common Common, path string) (Field, error) {
	field := TextField{
		Common:      common,
		Type:        TextType(rf.Type),
		Placeholder: rf.Placeholder,
	}

	switch field.Type {
	case TextTypeText, TextTypeTextarea, TextTypeNumber:
	case "":
		return nil, loadErrf(path+".type", ErrUnknownTextType, "type is required")
	default:
		return nil, loadErrf(path+".type", ErrUnknownTextType, "%q", rf.Type)
	}

	value, err := NormalizeValue(rf.Value)
	if err != nil {
		return nil, loadErr(path+".value", err)
	}
	if _, isBool := value.(bool); isBool {
		return nil, loadErrf(path+".value", ErrMalformedField, "text default must be a string or number")
	}
	field.Default = value

	for ri, rr := range rf.Rules {
		rulePath := fmt.Sprintf("%s.rules[%d]", path, ri)
		switch RuleType(rr.Type) {
		case RuleEmail, RulePhone:
		default:
			return nil, loadErrf(rulePath+".type", ErrUnknownRule, "%q", rr.Type)
		}
		field.Rules = append(field.Rules, Rule{Type: RuleType(rr.Type), Error: rr.Error})
	}

	return field, nil
}
