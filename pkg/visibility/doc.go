// Package visibility resolves which fields are live. The default evaluator
// follows each field's dependsOn descriptor with strict, type-sensitive
// equality; callers can plug in their own Evaluator.
package visibility
