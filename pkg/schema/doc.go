// Package schema defines the immutable application model the wizard walks:
// an Application holds ordered Steps, each with ordered Fields. Field is a
// sealed union of TextField, CheckboxField and RadioField sharing Common
// attributes; radio options sharing a Name form one mutually exclusive group.
//
// Documents are decoded from JSON (goccy/go-json) or YAML (yaml.v3) into a
// generic map and then into typed records with mapstructure. Loading is all
// or nothing: duplicate ids, dangling dependsOn references and malformed
// fields fail with a *LoadError carrying the document path of the defect.
package schema
