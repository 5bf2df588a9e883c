// Package openapi exposes the public contracts for loading and parsing the
// catalog's OpenAPI description. Implementations live under internal/openapi
// so kin-openapi types stay hidden from consumers; downstream packages only
// see the Document, Operation, and Schema wrappers defined here.
package openapi
