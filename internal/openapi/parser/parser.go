package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-catalog/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Operations converts a Document into a map keyed by operationId.
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if spec.Paths == nil || spec.Paths.Len() == 0 {
		if !p.options.AllowPartialDocuments {
			return nil, errors.New("openapi parser: document does not contain any paths")
		}
	}

	if err := p.resolveReferences(ctx, loader, spec); err != nil {
		return nil, err
	}

	operations := make(map[string]pkgopenapi.Operation)
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			p.collectOperation(ctx, operations, "GET", path, item.Get)
			p.collectOperation(ctx, operations, "PUT", path, item.Put)
			p.collectOperation(ctx, operations, "POST", path, item.Post)
			p.collectOperation(ctx, operations, "DELETE", path, item.Delete)
			p.collectOperation(ctx, operations, "PATCH", path, item.Patch)
		}
	}

	if len(operations) == 0 && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: no operations extracted")
	}

	return operations, nil
}

func (p *Parser) resolveReferences(ctx context.Context, loader *openapi3.Loader, spec *openapi3.T) error {
	if !p.options.ResolveReferences {
		return nil
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("openapi parser: validate: %w", err)
	}
	return nil
}

func (p *Parser) collectOperation(ctx context.Context, target map[string]pkgopenapi.Operation, method, path string, operation *openapi3.Operation) {
	if ctx.Err() != nil {
		return
	}
	if operation == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	requestSchema := p.extractRequestSchema(operation.RequestBody)
	responseSchemas := p.extractResponseSchemas(operation.Responses)

	op, err := pkgopenapi.NewOperation(opID, method, path, requestSchema, responseSchemas)
	if err != nil {
		// Invalid operations are skipped but noted by leaving them out.
		return
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	op.Extensions = extractExtensions(operation.Extensions)
	target[opID] = op
}

func (p *Parser) extractRequestSchema(requestBody *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if requestBody == nil {
		return pkgopenapi.Schema{}
	}
	if requestBody.Value == nil {
		return pkgopenapi.Schema{Ref: requestBody.Ref}
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "application/json", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok {
			return convertSchema(mt.Schema)
		}
	}
	for _, mt := range content {
		return convertSchema(mt.Schema)
	}
	return pkgopenapi.Schema{}
}

func (p *Parser) extractResponseSchemas(responses *openapi3.Responses) map[string]pkgopenapi.Schema {
	if responses == nil || responses.Len() == 0 {
		return nil
	}
	result := make(map[string]pkgopenapi.Schema)
	for status, ref := range responses.Map() {
		if ref == nil {
			continue
		}
		var schema pkgopenapi.Schema
		if ref.Value == nil {
			schema = pkgopenapi.Schema{Ref: ref.Ref}
		} else {
			content := ref.Value.Content
			if len(content) == 0 {
				continue
			}
			if mt, ok := content["application/json"]; ok {
				schema = convertSchema(mt.Schema)
			} else {
				for _, mt := range content {
					schema = convertSchema(mt.Schema)
					break
				}
			}
			if schema.Description == "" && ref.Value.Description != nil {
				schema.Description = *ref.Value.Description
			}
		}
		if schema.Ref == "" && schema.Type == "" && schema.Items == nil && len(schema.Properties) == 0 {
			continue
		}
		result[status] = schema
	}
	return result
}

func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	return convertSchemaSeen(ref, make(map[*openapi3.Schema]bool))
}

// convertSchemaSeen tracks visited schema values so documents with cyclic
// references degrade to ref-only placeholders instead of recursing forever.
func convertSchemaSeen(ref *openapi3.SchemaRef, seen map[*openapi3.Schema]bool) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil || seen[ref.Value] {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	seen[ref.Value] = true
	defer delete(seen, ref.Value)
	src := ref.Value
	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Description: src.Description,
		Default:     src.Default,
	}

	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		properties := make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			properties[name] = convertSchemaSeen(property, seen)
		}
		schema.Properties = properties
	}
	if src.Items != nil {
		items := convertSchemaSeen(src.Items, seen)
		schema.Items = &items
	}
	if src.Min != nil {
		value := *src.Min
		schema.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		schema.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		schema.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	if src.Pattern != "" {
		schema.Pattern = src.Pattern
	}
	schema.Extensions = extractExtensions(src.Extensions)
	mergeAllOf(&schema, src.AllOf, seen)
	return schema
}

// mergeAllOf flattens allOf members into the target schema: properties and
// required sets accumulate, the type is adopted when the target has none, and
// x-catalog extensions are carried over.
func mergeAllOf(target *pkgopenapi.Schema, refs openapi3.SchemaRefs, seen map[*openapi3.Schema]bool) {
	if target == nil || len(refs) == 0 {
		return
	}
	for _, ref := range refs {
		if ref == nil || ref.Value == nil {
			continue
		}
		member := convertSchemaSeen(ref, seen)
		if target.Type == "" {
			target.Type = member.Type
		}
		if len(member.Required) > 0 {
			target.Required = append(target.Required, member.Required...)
		}
		if len(member.Properties) > 0 {
			if target.Properties == nil {
				target.Properties = make(map[string]pkgopenapi.Schema, len(member.Properties))
			}
			for name, property := range member.Properties {
				existing, exists := target.Properties[name]
				if !exists {
					target.Properties[name] = property
					continue
				}
				target.Properties[name] = mergeProperty(existing, property)
			}
		}
		if len(member.Extensions) > 0 {
			if target.Extensions == nil {
				target.Extensions = make(map[string]any, len(member.Extensions))
			}
			for key, value := range member.Extensions {
				target.Extensions[key] = value
			}
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

// extractExtensions keeps only the x-catalog vendor annotations; other
// extensions never influence form building and are dropped.
func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	result := make(map[string]any)
	for key, value := range raw {
		switch {
		case key == pkgopenapi.ExtensionPrefix:
			if mapped, ok := cloneMap(value); ok && len(mapped) > 0 {
				result[key] = mapped
			}
		case strings.HasPrefix(key, pkgopenapi.ExtensionPrefix+"-"):
			if value != nil {
				result[key] = value
			}
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// mergeProperty layers a later allOf member's constraints over an earlier
// definition of the same property. Scalar facets fill gaps, while enums and
// extensions from the later member take precedence so series-specific
// overrides win.
func mergeProperty(base, overlay pkgopenapi.Schema) pkgopenapi.Schema {
	merged := base
	if overlay.Type != "" {
		merged.Type = overlay.Type
	}
	if overlay.Format != "" {
		merged.Format = overlay.Format
	}
	if overlay.Description != "" {
		merged.Description = overlay.Description
	}
	if overlay.Default != nil {
		merged.Default = overlay.Default
	}
	if overlay.Pattern != "" {
		merged.Pattern = overlay.Pattern
	}
	if overlay.Minimum != nil {
		merged.Minimum = overlay.Minimum
	}
	if overlay.Maximum != nil {
		merged.Maximum = overlay.Maximum
	}
	if overlay.MinLength != nil {
		merged.MinLength = overlay.MinLength
	}
	if overlay.MaxLength != nil {
		merged.MaxLength = overlay.MaxLength
	}
	if len(overlay.Enum) > 0 {
		merged.Enum = append([]any(nil), overlay.Enum...)
	}
	if len(overlay.Required) > 0 {
		merged.Required = append(merged.Required, overlay.Required...)
	}
	if overlay.Items != nil {
		merged.Items = overlay.Items
	}
	if len(overlay.Properties) > 0 {
		if merged.Properties == nil {
			merged.Properties = make(map[string]pkgopenapi.Schema, len(overlay.Properties))
		}
		for name, property := range overlay.Properties {
			if existing, exists := merged.Properties[name]; exists {
				merged.Properties[name] = mergeProperty(existing, property)
			} else {
				merged.Properties[name] = property
			}
		}
	}
	if len(overlay.Extensions) > 0 {
		if merged.Extensions == nil {
			merged.Extensions = make(map[string]any, len(overlay.Extensions))
		}
		for key, value := range overlay.Extensions {
			merged.Extensions[key] = value
		}
	}
	return merged
}

func cloneMap(value any) (map[string]any, bool) {
	mapped, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	cloned := make(map[string]any, len(mapped))
	for k, v := range mapped {
		cloned[k] = v
	}
	return cloned, true
}
