package store

import "strings"

// Errors maps field names to their last validation message. A missing or
// empty entry means the field has no error.
type Errors struct {
	messages map[string]string
}

// NewErrors returns an empty error store.
func NewErrors() *Errors {
	return &Errors{messages: make(map[string]string)}
}

// Get returns the message recorded for name, or "".
func (e *Errors) Get(name string) string {
	if e == nil {
		return ""
	}
	return e.messages[name]
}

// Set records message for name. An empty message clears the entry.
func (e *Errors) Set(name, message string) {
	if e.messages == nil {
		e.messages = make(map[string]string)
	}
	if strings.TrimSpace(message) == "" {
		delete(e.messages, name)
		return
	}
	e.messages[name] = message
}

// Apply records every result in one pass.
func (e *Errors) Apply(results map[string]string) {
	for name, message := range results {
		e.Set(name, message)
	}
}

// Clear removes every recorded message.
func (e *Errors) Clear() {
	e.messages = make(map[string]string)
}

// Any reports whether at least one field has a message.
func (e *Errors) Any() bool {
	return e != nil && len(e.messages) > 0
}

// Snapshot returns a copy of the recorded messages.
func (e *Errors) Snapshot() map[string]string {
	if e == nil || len(e.messages) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(e.messages))
	for k, v := range e.messages {
		out[k] = v
	}
	return out
}
