package render

// RenderOptions carry per-request data that is not part of the session.
type RenderOptions struct {
	// Action is the URL the rendered form posts to. Empty keeps the current URL.
	Action string
	// Hidden lists extra inputs (CSRF tokens, session ids) emitted with the form.
	Hidden map[string]string
	// Errors are server-side messages keyed by field name, shown next to the
	// session's own validation message. See MapErrorPayload.
	Errors map[string][]string
	// FormErrors are messages that belong to no single field.
	FormErrors []string
}
