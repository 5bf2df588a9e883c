package openapi

// Extension keys recognised in the catalog's OpenAPI document. Operation and
// schema annotations under the x-catalog prefix survive parsing; everything
// else is dropped.
const (
	// ExtensionSeries binds an edit operation to a record series, e.g.
	// "x-catalog-series: m" on editScheme.
	ExtensionSeries = "x-catalog-series"

	// ExtensionWidget overrides the input control chosen for a field, e.g.
	// "textarea", "select", "checkboxes", "date".
	ExtensionWidget = "x-catalog-widget"

	// ExtensionVocab names a controlled vocabulary backing a field's choices,
	// e.g. "unesco-thesaurus" for scheme keywords.
	ExtensionVocab = "x-catalog-vocab"

	// ExtensionLabel overrides the human-readable label derived from the
	// property name.
	ExtensionLabel = "x-catalog-label"

	// ExtensionValidate names a domain validation rule such as "emailOrURL",
	// "w3cDate", or "requiredIf:<field>".
	ExtensionValidate = "x-catalog-validate"

	// ExtensionPrefix gates which vendor extensions the parser retains.
	ExtensionPrefix = "x-catalog"
)
