// Package record defines the catalog's record model: the series of record
// types (schemes, organizations, tools, mappings, endorsements, datatypes),
// the msc: identifier scheme used to cross-reference them, and the typed
// accessors views use to read optional record fields.
package record
