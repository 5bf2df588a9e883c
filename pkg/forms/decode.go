package forms

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-catalog/pkg/model"
)

// Decode converts submitted form values into a field map shaped like the
// given form model. Scalar fields read a single value; array fields accept
// either repeated keys ("keywords") or indexed keys ("keywords-0"); arrays of
// objects use row-and-column keys ("locations-0-url").
func Decode(values url.Values, form model.FormModel) map[string]any {
	out := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		switch field.Type {
		case model.FieldTypeArray:
			if field.Items != nil && field.Items.Type == model.FieldTypeObject {
				if rows := decodeRows(values, field); len(rows) > 0 {
					out[field.Name] = rows
				}
				continue
			}
			if list := decodeList(values, field.Name); len(list) > 0 {
				out[field.Name] = list
			}
		case model.FieldTypeObject:
			if nested := decodeObject(values, field.Name, field.Nested); len(nested) > 0 {
				out[field.Name] = nested
			}
		case model.FieldTypeInteger:
			if raw := strings.TrimSpace(values.Get(field.Name)); raw != "" {
				if parsed, err := strconv.Atoi(raw); err == nil {
					out[field.Name] = parsed
				} else {
					out[field.Name] = raw
				}
			}
		case model.FieldTypeNumber:
			if raw := strings.TrimSpace(values.Get(field.Name)); raw != "" {
				if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
					out[field.Name] = parsed
				} else {
					out[field.Name] = raw
				}
			}
		case model.FieldTypeBoolean:
			if raw := strings.TrimSpace(values.Get(field.Name)); raw != "" {
				out[field.Name] = raw == "true" || raw == "on" || raw == "1"
			}
		default:
			if raw := strings.TrimSpace(values.Get(field.Name)); raw != "" {
				out[field.Name] = raw
			}
		}
	}
	return out
}

// decodeList gathers the values of a string array field. Repeated keys win
// over indexed keys when both are present.
func decodeList(values url.Values, name string) []string {
	var list []string
	for _, raw := range values[name] {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) > 0 {
		return list
	}
	for _, index := range rowIndexes(values, name, false) {
		raw := strings.TrimSpace(values.Get(fmt.Sprintf("%s-%d", name, index)))
		if raw != "" {
			list = append(list, raw)
		}
	}
	return list
}

// decodeRows gathers an array of objects from row-and-column keys.
func decodeRows(values url.Values, field model.Field) []any {
	var rows []any
	for _, index := range rowIndexes(values, field.Name, true) {
		row := make(map[string]any)
		for _, column := range field.Items.Nested {
			key := fmt.Sprintf("%s-%d-%s", field.Name, index, column.Name)
			raw := strings.TrimSpace(values.Get(key))
			if raw == "" {
				continue
			}
			row[column.Name] = raw
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func decodeObject(values url.Values, name string, nested []model.Field) map[string]any {
	out := make(map[string]any)
	for _, column := range nested {
		raw := strings.TrimSpace(values.Get(name + "-" + column.Name))
		if raw != "" {
			out[column.Name] = raw
		}
	}
	return out
}

// rowIndexes extracts the distinct numeric indexes present for a field's
// indexed keys, sorted ascending so row order follows the rendered form.
func rowIndexes(values url.Values, name string, composite bool) []int {
	prefix := name + "-"
	seen := make(map[int]struct{})
	for key := range values {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		digits := rest
		if composite {
			digits, _, _ = strings.Cut(rest, "-")
		}
		index, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		seen[index] = struct{}{}
	}
	indexes := make([]int, 0, len(seen))
	for index := range seen {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	return indexes
}
