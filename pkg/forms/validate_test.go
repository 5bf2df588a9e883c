package forms

import (
	"testing"

	"github.com/goliatone/go-catalog/pkg/model"
)

func TestValidateRequired(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "title", Type: model.FieldTypeString, Required: true},
	}}

	errs := Validate(form, map[string]any{})
	if len(errs["title"]) == 0 {
		t.Fatalf("expected required error for title, got %v", errs)
	}

	errs = Validate(form, map[string]any{"title": "DataCite"})
	if !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateMaxLength(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "title", Type: model.FieldTypeString, Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "5"}},
		}},
	}}

	errs := Validate(form, map[string]any{"title": "too long title"})
	if len(errs["title"]) == 0 {
		t.Fatalf("expected maxLength error, got %v", errs)
	}
}

func TestValidateW3CDate(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "issued", Type: model.FieldTypeString, Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleW3CDate},
		}},
	}}

	for _, good := range []string{"2024", "2024-03", "2024-03-15"} {
		if errs := Validate(form, map[string]any{"issued": good}); !errs.Empty() {
			t.Errorf("date %q rejected: %v", good, errs)
		}
	}
	for _, bad := range []string{"15/03/2024", "2024-3", "March 2024"} {
		if errs := Validate(form, map[string]any{"issued": bad}); errs.Empty() {
			t.Errorf("date %q accepted", bad)
		}
	}
}

func TestValidateEmailOrURL(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "contact", Type: model.FieldTypeString, Widget: model.WidgetURL, Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleEmailOrURL},
		}},
	}}

	for _, good := range []string{"info@example.com", "https://example.com", "mailto:info@example.com"} {
		if errs := Validate(form, map[string]any{"contact": good}); !errs.Empty() {
			t.Errorf("value %q rejected: %v", good, errs)
		}
	}
	if errs := Validate(form, map[string]any{"contact": "not a contact"}); errs.Empty() {
		t.Errorf("invalid contact accepted")
	}
}

func TestValidateRequiredIfInsideRows(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{
			Name: "versions",
			Type: model.FieldTypeArray,
			Items: &model.Field{
				Type: model.FieldTypeObject,
				Nested: []model.Field{
					{Name: "number", Type: model.FieldTypeString, Validations: []model.ValidationRule{
						{Kind: model.ValidationRuleRequiredIf, Params: map[string]string{"field": "issued"}},
					}},
					{Name: "issued", Type: model.FieldTypeString},
				},
			},
		},
	}}

	values := map[string]any{
		"versions": []any{
			map[string]any{"issued": "2024-01-01"},
			map[string]any{"number": "2.0"},
		},
	}
	errs := Validate(form, values)
	if len(errs["versions.0.number"]) == 0 {
		t.Fatalf("expected requiredIf error on first row, got %v", errs)
	}
	if len(errs["versions.1.number"]) != 0 {
		t.Fatalf("second row should pass, got %v", errs)
	}
}

func TestValidateEnumMembership(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{
			Name:  "types",
			Type:  model.FieldTypeArray,
			Items: &model.Field{Type: model.FieldTypeString, Enum: []any{"archive", "standards body"}},
		},
	}}

	errs := Validate(form, map[string]any{"types": []string{"archive", "pirate ship"}})
	if len(errs["types.1"]) == 0 {
		t.Fatalf("expected enum error for types.1, got %v", errs)
	}
}

func TestValidateURLWidget(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "url", Type: model.FieldTypeString, Widget: model.WidgetURL},
	}}

	if errs := Validate(form, map[string]any{"url": "ftp://example.com"}); errs.Empty() {
		t.Fatalf("non-http scheme accepted")
	}
	if errs := Validate(form, map[string]any{"url": "https://example.com/x"}); !errs.Empty() {
		t.Fatalf("https url rejected: %v", errs)
	}
}
