package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-catalog/pkg/openapi"
)

// Builder converts edit operations into form models.
type Builder struct {
	label func(string) string
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	return &Builder{label: options.labeler()}
}

// Build transforms an OpenAPI operation into a FormModel suitable for
// rendering. Only the request body contributes fields; responses carry no
// form inputs.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
	}
	if series, ok := op.Extensions[pkgopenapi.ExtensionSeries].(string); ok {
		form.Series = series
	}

	fields, err := b.fieldsFromSchema("", op.RequestBody, true)
	if err != nil {
		return FormModel{}, err
	}
	form.Fields = fields

	return form, nil
}

func (b *Builder) fieldsFromSchema(name string, schema pkgopenapi.Schema, required bool) ([]Field, error) {
	if schema.Ref != "" && schema.Type == "" && len(schema.Properties) == 0 {
		// Unresolved reference; surface an object placeholder rather than
		// dropping the field silently.
		field := Field{
			Name:        name,
			Type:        FieldTypeObject,
			Required:    required,
			Label:       b.label(name),
			Description: schema.Description,
		}
		applyExtensions(&field, schema)
		return []Field{field}, nil
	}

	switch schema.Type {
	case "object", "":
		return b.fieldsFromObject(name, schema, required)
	case "array":
		field, err := b.fieldFromArray(name, schema, required)
		if err != nil {
			return nil, err
		}
		return []Field{field}, nil
	default:
		field := b.fieldFromPrimitive(name, schema, required)
		return []Field{field}, nil
	}
}

func (b *Builder) fieldsFromObject(name string, schema pkgopenapi.Schema, required bool) ([]Field, error) {
	var fields []Field
	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, item := range schema.Required {
		requiredSet[item] = struct{}{}
	}

	propNames := make([]string, 0, len(schema.Properties))
	for propName := range schema.Properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	for _, propName := range propNames {
		propSchema := schema.Properties[propName]
		_, isRequired := requiredSet[propName]
		converted, err := b.fieldsFromSchema(propName, propSchema, isRequired)
		if err != nil {
			return nil, err
		}
		fields = append(fields, converted...)
	}

	if name != "" {
		// Wrap nested properties inside a parent object field.
		parent := Field{
			Name:        name,
			Type:        FieldTypeObject,
			Label:       b.label(name),
			Description: schema.Description,
			Required:    required,
			Nested:      fields,
		}
		if schema.Default != nil {
			parent.Default = schema.Default
		}
		applyValidations(&parent, schema)
		applyExtensions(&parent, schema)
		return []Field{parent}, nil
	}

	return fields, nil
}

func (b *Builder) fieldFromArray(name string, schema pkgopenapi.Schema, required bool) (Field, error) {
	if schema.Items == nil {
		return Field{}, fmt.Errorf("model builder: array field %q missing items", name)
	}
	var itemField *Field
	nested, err := b.fieldsFromSchema(name+"Item", *schema.Items, false)
	if err != nil {
		return Field{}, err
	}
	if len(nested) > 0 {
		item := nested[0]
		itemField = &item
	}

	field := Field{
		Name:        name,
		Type:        FieldTypeArray,
		Label:       b.label(name),
		Description: schema.Description,
		Required:    required,
		Items:       itemField,
	}
	if schema.Default != nil {
		field.Default = schema.Default
	}
	if itemField != nil && len(itemField.Enum) > 0 {
		field.Enum = append([]any(nil), itemField.Enum...)
	}
	applyValidations(&field, schema)
	applyExtensions(&field, schema)
	return field, nil
}

func (b *Builder) fieldFromPrimitive(name string, schema pkgopenapi.Schema, required bool) Field {
	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Label:       b.label(name),
		Description: schema.Description,
		Required:    required,
		Default:     schema.Default,
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}
	applyValidations(&field, schema)
	applyExtensions(&field, schema)
	applyFormatWidget(&field)
	return field
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "array":
		return FieldTypeArray
	case "object":
		return FieldTypeObject
	default:
		return FieldTypeString
	}
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	if field == nil {
		return
	}

	if schema.Minimum != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMin,
			Params: map[string]string{"value": formatFloat(*schema.Minimum)},
		})
	}
	if schema.Maximum != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMax,
			Params: map[string]string{"value": formatFloat(*schema.Maximum)},
		})
	}
	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MinLength)},
		})
	}
	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MaxLength)},
		})
	}
	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
}

// applyExtensions copies x-catalog annotations onto the field: widget and
// vocabulary bindings, label overrides, and named domain validation rules.
func applyExtensions(field *Field, schema pkgopenapi.Schema) {
	if field == nil || len(schema.Extensions) == 0 {
		return
	}
	if widget := schema.Extension(pkgopenapi.ExtensionWidget); widget != "" {
		field.Widget = widget
	}
	if vocab := schema.Extension(pkgopenapi.ExtensionVocab); vocab != "" {
		field.Vocab = vocab
	}
	if label := schema.Extension(pkgopenapi.ExtensionLabel); label != "" {
		field.Label = label
	}
	if rule := schema.Extension(pkgopenapi.ExtensionValidate); rule != "" {
		if parsed, ok := parseValidateExtension(rule); ok {
			field.Validations = append(field.Validations, parsed)
		}
	}
}

// parseValidateExtension maps an x-catalog-validate value to a rule. Rules
// with an argument use a colon separator, e.g. "requiredIf:issued".
func parseValidateExtension(raw string) (ValidationRule, bool) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(raw), ":")
	switch kind {
	case ValidationRuleEmailOrURL, ValidationRuleW3CDate:
		return ValidationRule{Kind: kind}, true
	case ValidationRuleRequiredIf:
		if arg == "" {
			return ValidationRule{}, false
		}
		return ValidationRule{Kind: kind, Params: map[string]string{"field": arg}}, true
	default:
		return ValidationRule{}, false
	}
}

// applyFormatWidget derives an input widget from the string format when no
// explicit widget annotation is present.
func applyFormatWidget(field *Field) {
	if field == nil || field.Widget != "" {
		return
	}
	switch strings.TrimSpace(strings.ToLower(field.Format)) {
	case "date":
		field.Widget = WidgetDate
	case "email":
		field.Widget = WidgetEmail
	case "uri", "iri", "uri-reference", "url":
		field.Widget = WidgetURL
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
