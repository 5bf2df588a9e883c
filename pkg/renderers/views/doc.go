// Package views renders the catalog's HTML pages. Display pages project a
// stored record into per-series templates; edit pages render a form model
// with current values, validation errors, and relation choices. Templates are
// embedded and can be overridden via options.
package views
