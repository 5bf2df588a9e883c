package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

// Widget names the input control a renderer should emit for a field. Widgets
// come from x-catalog-widget annotations or are derived from string formats.
const (
	WidgetText       = "text"
	WidgetTextarea   = "textarea"
	WidgetSelect     = "select"
	WidgetCheckboxes = "checkboxes"
	WidgetDate       = "date"
	WidgetURL        = "url"
	WidgetEmail      = "email"
)

const (
	ValidationRuleMin        = "min"
	ValidationRuleMax        = "max"
	ValidationRuleMinLength  = "minLength"
	ValidationRuleMaxLength  = "maxLength"
	ValidationRulePattern    = "pattern"
	ValidationRuleRequiredIf = "requiredIf"
	ValidationRuleEmailOrURL = "emailOrURL"
	ValidationRuleW3CDate    = "w3cDate"
)

// ValidationRule represents a single validation constraint applied to a field.
// Numeric bounds and length limits encode their threshold in Params["value"],
// pattern rules preserve the original expression in Params["pattern"], and
// requiredIf names its companion field in Params["field"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input inside a generated form. Struct fields are
// annotated so renderers can serialise them directly when needed.
type Field struct {
	Name        string           `json:"name"`
	Type        FieldType        `json:"type"`
	Format      string           `json:"format,omitempty"`
	Required    bool             `json:"required"`
	Label       string           `json:"label,omitempty"`
	Description string           `json:"description,omitempty"`
	Default     any              `json:"default,omitempty"`
	Enum        []any            `json:"enum,omitempty"`
	Nested      []Field          `json:"nested,omitempty"`
	Items       *Field           `json:"items,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
	Widget      string           `json:"widget,omitempty"`
	Vocab       string           `json:"vocab,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string  `json:"operationId"`
	Series      string  `json:"series,omitempty"`
	Endpoint    string  `json:"endpoint"`
	Method      string  `json:"method"`
	Summary     string  `json:"summary,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// Field returns the named top-level field, or nil when absent.
func (m FormModel) Field(name string) *Field {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}
	return nil
}

// EnumStrings returns the field's enum values as strings, skipping non-string
// entries.
func (f Field) EnumStrings() []string {
	if len(f.Enum) == 0 {
		return nil
	}
	out := make([]string, 0, len(f.Enum))
	for _, value := range f.Enum {
		if str, ok := value.(string); ok {
			out = append(out, str)
		}
	}
	return out
}
