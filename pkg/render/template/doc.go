// Package template defines the engine contract used by the HTML renderer.
// The pongo subpackage provides the default pongo2-backed implementation.
package template
