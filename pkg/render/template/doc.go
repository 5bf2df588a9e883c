// Package template defines renderer-agnostic template interfaces and adapters.
// The pongo2-backed engine under gotemplate is the default implementation.
package template
