// Package model defines the typed form model consumed by renderers. Builders
// reside in internal/model but return the types defined here. Validation
// rules expose canonical identifiers (min/max, minLength/maxLength, pattern,
// requiredIf, emailOrURL, w3cDate) with string parameters so renderers and
// the form pipeline can map constraints onto HTML attributes or runtime
// validators without sacrificing deterministic JSON snapshots. x-catalog
// schema annotations surface as the Widget and Vocab fields.
package model
