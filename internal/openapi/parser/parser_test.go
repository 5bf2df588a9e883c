package parser

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-catalog/pkg/openapi"
)

func TestConvertSchemaHandlesRecursiveReferences(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Cycle", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "Scheme": {
        "type": "object",
        "properties": {
          "parent": { "$ref": "#/components/schemas/SchemeRef" }
        }
      },
      "SchemeRef": {
        "type": "object",
        "properties": {
          "scheme": { "$ref": "#/components/schemas/Scheme" }
        }
      }
    }
  }
}`

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData([]byte(document))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}

	scheme := doc.Components.Schemas["Scheme"]
	if scheme == nil {
		t.Fatalf("schema Scheme not found")
	}
	converted := convertSchema(scheme)
	if converted.Properties == nil {
		t.Fatalf("expected properties for Scheme schema")
	}
	parent, ok := converted.Properties["parent"]
	if !ok {
		t.Fatalf("expected parent property on Scheme schema")
	}
	if parent.Ref == "" {
		t.Fatalf("expected parent property to retain reference when resolving cycles")
	}
}

func TestParserExtractsEditOperation(t *testing.T) {
	t.Parallel()

	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Catalog", "version": "1.0.0" },
  "paths": {
    "/edit/m": {
      "post": {
        "operationId": "editScheme",
        "summary": "Edit a metadata scheme",
        "x-catalog-series": "m",
        "requestBody": {
          "content": {
            "application/x-www-form-urlencoded": {
              "schema": {
                "allOf": [
                  {"$ref": "#/components/schemas/TitledRecord"},
                  {
                    "type": "object",
                    "properties": {
                      "keywords": {
                        "type": "array",
                        "items": {"type": "string"},
                        "x-catalog-vocab": "unesco-thesaurus"
                      }
                    }
                  }
                ]
              }
            }
          }
        },
        "responses": {
          "200": {"description": "ok"}
        }
      }
    }
  },
  "components": {
    "schemas": {
      "TitledRecord": {
        "type": "object",
        "required": ["title"],
        "properties": {
          "title": {"type": "string", "maxLength": 200},
          "description": {"type": "string", "x-catalog-widget": "textarea"}
        }
      }
    }
  }
}`

	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile("inline.json"), []byte(document))
	if err != nil {
		t.Fatalf("construct document: %v", err)
	}

	parser := New(pkgopenapi.NewParserOptions())
	operations, err := parser.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse operations: %v", err)
	}

	op, ok := operations["editScheme"]
	if !ok {
		t.Fatalf("operation editScheme not found")
	}
	if got := op.Extensions[pkgopenapi.ExtensionSeries]; got != "m" {
		t.Fatalf("series extension = %v, want m", got)
	}

	req := op.RequestBody
	if req.Type != "object" {
		t.Fatalf("request schema type = %q, want object", req.Type)
	}
	if len(req.Properties) != 3 {
		t.Fatalf("properties length = %d, want 3", len(req.Properties))
	}

	title, ok := req.Properties["title"]
	if !ok || title.MaxLength == nil || *title.MaxLength != 200 {
		t.Fatalf("expected title property with maxLength 200, got %+v", title)
	}
	description, ok := req.Properties["description"]
	if !ok || description.Extension(pkgopenapi.ExtensionWidget) != "textarea" {
		t.Fatalf("expected description property with textarea widget, got %+v", description)
	}
	keywords, ok := req.Properties["keywords"]
	if !ok || keywords.Extension(pkgopenapi.ExtensionVocab) != "unesco-thesaurus" {
		t.Fatalf("expected keywords property with vocab extension, got %+v", keywords)
	}

	required := make(map[string]struct{}, len(req.Required))
	for _, name := range req.Required {
		required[name] = struct{}{}
	}
	if _, ok := required["title"]; !ok {
		t.Fatalf("required set missing title")
	}
}

func TestParserDropsForeignExtensions(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"x-catalog-widget": "select",
		"x-other-vendor":   "ignored",
	}
	result := extractExtensions(raw)
	if _, ok := result["x-other-vendor"]; ok {
		t.Fatalf("foreign extension survived extraction")
	}
	if result["x-catalog-widget"] != "select" {
		t.Fatalf("catalog extension missing: %v", result)
	}
}
