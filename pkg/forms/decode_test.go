package forms

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-catalog/pkg/model"
)

func locationsField() model.Field {
	return model.Field{
		Name: "locations",
		Type: model.FieldTypeArray,
		Items: &model.Field{
			Name: "locationsItem",
			Type: model.FieldTypeObject,
			Nested: []model.Field{
				{Name: "url", Type: model.FieldTypeString, Widget: model.WidgetURL},
				{Name: "type", Type: model.FieldTypeString},
			},
		},
	}
}

func TestDecodeScalarAndList(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "title", Type: model.FieldTypeString},
		{Name: "keywords", Type: model.FieldTypeArray, Items: &model.Field{Type: model.FieldTypeString}},
	}}

	values := url.Values{
		"title":    {"  Dublin Core  "},
		"keywords": {"Geology", "Ecology", ""},
	}

	got := Decode(values, form)
	want := map[string]any{
		"title":    "Dublin Core",
		"keywords": []string{"Geology", "Ecology"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeIndexedList(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "dataTypes", Type: model.FieldTypeArray, Items: &model.Field{Type: model.FieldTypeString}},
	}}

	values := url.Values{
		"dataTypes-1": {"msc:datatype2"},
		"dataTypes-0": {"msc:datatype1"},
	}

	got := Decode(values, form)
	want := map[string]any{"dataTypes": []string{"msc:datatype1", "msc:datatype2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSubformRows(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{locationsField()}}

	values := url.Values{
		"locations-0-url":  {"https://example.com"},
		"locations-0-type": {"website"},
		"locations-2-url":  {"https://example.com/spec.pdf"},
		"locations-2-type": {"document"},
		"locations-1-url":  {""},
	}

	got := Decode(values, form)
	want := map[string]any{
		"locations": []any{
			map[string]any{"url": "https://example.com", "type": "website"},
			map[string]any{"url": "https://example.com/spec.pdf", "type": "document"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSkipsEmptyFields(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "title", Type: model.FieldTypeString},
		{Name: "description", Type: model.FieldTypeString},
	}}

	got := Decode(url.Values{"title": {"X"}, "description": {"   "}}, form)
	if _, ok := got["description"]; ok {
		t.Fatalf("blank description should be dropped: %v", got)
	}
}
