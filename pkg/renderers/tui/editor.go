// Package tui walks a record form model as a sequence of terminal prompts.
// Answers are collected in the same shape an HTML form submission would
// post, so the regular form pipeline can validate and save them.
package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"github.com/goliatone/go-catalog/pkg/model"
	"github.com/goliatone/go-catalog/pkg/render"
)

// Editor drives a prompt session for one record.
type Editor struct {
	driver   PromptDriver
	pageSize int
}

// New constructs an editor backed by survey prompts.
func New(options ...Option) (*Editor, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}
	e := &Editor{driver: driver, pageSize: 12}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// EditRecord prompts for every field in the form, pre-filling prompts from
// the record's current values. Relation and data-type selectors take their
// candidates from choices, keyed by field name.
func (e *Editor) EditRecord(ctx context.Context, form model.FormModel, values map[string]any, choices map[string][]render.Choice) (url.Values, error) {
	out := url.Values{}
	for _, field := range form.Fields {
		if err := e.promptField(ctx, field, values[field.Name], choices[field.Name], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *Editor) promptField(ctx context.Context, field model.Field, current any, options []render.Choice, out url.Values) error {
	if field.Widget == model.WidgetCheckboxes {
		return e.promptChecklist(ctx, field, current, options, out)
	}

	switch {
	case field.Type == model.FieldTypeArray && field.Items != nil && field.Items.Type == model.FieldTypeObject:
		return e.promptRows(ctx, field, current, out)
	case field.Type == model.FieldTypeArray:
		return e.promptList(ctx, field, current, out)
	case field.Type == model.FieldTypeBoolean:
		answer, err := e.driver.Confirm(ctx, ConfirmConfig{
			Message: fieldLabel(field) + "?",
			Default: cast.ToBool(current),
			Help:    field.Description,
		})
		if err != nil {
			return err
		}
		if answer {
			out.Set(field.Name, "true")
		}
		return nil
	case len(field.Enum) > 0:
		return e.promptEnum(ctx, field, cast.ToString(current), out)
	case field.Widget == model.WidgetTextarea:
		answer, err := e.driver.TextArea(ctx, TextAreaConfig{
			Message: fieldLabel(field),
			Default: cast.ToString(current),
			Help:    field.Description,
		})
		if err != nil {
			return err
		}
		setTrimmed(out, field.Name, answer)
		return nil
	default:
		answer, err := e.driver.Input(ctx, InputConfig{
			Message: fieldLabel(field),
			Default: cast.ToString(current),
			Help:    inputHelp(field),
		})
		if err != nil {
			return err
		}
		setTrimmed(out, field.Name, answer)
		return nil
	}
}

// promptChecklist handles checkbox widgets: relation and data-type selectors
// choose among candidate records, enum checklists among their fixed values.
func (e *Editor) promptChecklist(ctx context.Context, field model.Field, current any, options []render.Choice, out url.Values) error {
	if len(options) == 0 {
		if field.Items != nil && len(field.Items.Enum) > 0 {
			for _, value := range field.Items.EnumStrings() {
				options = append(options, render.Choice{Value: value, Label: value})
			}
		} else {
			// Nothing to choose from; fall back to free-text entry.
			return e.promptList(ctx, field, current, out)
		}
	}

	selected := make(map[string]bool)
	for _, value := range cast.ToStringSlice(current) {
		selected[value] = true
	}

	labels := make([]string, len(options))
	var defaults []int
	for i, choice := range options {
		labels[i] = choice.Label
		if selected[choice.Value] || choice.Selected {
			defaults = append(defaults, i)
		}
	}

	picked, err := e.driver.MultiSelect(ctx, SelectConfig{
		Message:  fieldLabel(field),
		Options:  labels,
		Defaults: defaults,
		Help:     field.Description,
		PageSize: e.pageSize,
	})
	if err != nil {
		return err
	}
	for _, idx := range picked {
		if idx >= 0 && idx < len(options) {
			out.Add(field.Name, options[idx].Value)
		}
	}
	return nil
}

// promptList collects a scalar array as one comma-separated input.
func (e *Editor) promptList(ctx context.Context, field model.Field, current any, out url.Values) error {
	answer, err := e.driver.Input(ctx, InputConfig{
		Message: fieldLabel(field) + " (comma separated)",
		Default: strings.Join(cast.ToStringSlice(current), ", "),
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	for _, part := range strings.Split(answer, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out.Add(field.Name, trimmed)
		}
	}
	return nil
}

// promptRows walks an array of objects: existing entries first, then a
// confirm loop for new ones. An entry whose columns are all left blank is
// dropped when the submission is decoded.
func (e *Editor) promptRows(ctx context.Context, field model.Field, current any, out url.Values) error {
	label := fieldLabel(field)
	columns := field.Items.Nested

	index := 0
	for _, row := range rowsOf(current) {
		if err := e.driver.Info(ctx, fmt.Sprintf("%s, entry %d (blank out every column to drop it):", label, index+1)); err != nil {
			return err
		}
		if err := e.promptColumns(ctx, field.Name, index, columns, row, out); err != nil {
			return err
		}
		index++
	}

	for {
		more, err := e.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add a %s entry?", strings.ToLower(label)),
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := e.promptColumns(ctx, field.Name, index, columns, nil, out); err != nil {
			return err
		}
		index++
	}
}

func (e *Editor) promptColumns(ctx context.Context, name string, index int, columns []model.Field, row map[string]any, out url.Values) error {
	for _, column := range columns {
		key := fmt.Sprintf("%s-%d-%s", name, index, column.Name)
		existing := cast.ToString(row[column.Name])

		if enum := column.EnumStrings(); len(enum) > 0 {
			options := append([]string{"(blank)"}, enum...)
			defaultIndex := 0
			for i, value := range enum {
				if value == existing {
					defaultIndex = i + 1
				}
			}
			picked, err := e.driver.Select(ctx, SelectConfig{
				Message:      fieldLabel(column),
				Options:      options,
				DefaultIndex: defaultIndex,
				PageSize:     e.pageSize,
			})
			if err != nil {
				return err
			}
			if picked > 0 {
				out.Set(key, options[picked])
			}
			continue
		}

		answer, err := e.driver.Input(ctx, InputConfig{
			Message: fieldLabel(column),
			Default: existing,
			Help:    inputHelp(column),
		})
		if err != nil {
			return err
		}
		setTrimmed(out, key, answer)
	}
	return nil
}

func (e *Editor) promptEnum(ctx context.Context, field model.Field, current string, out url.Values) error {
	options := field.EnumStrings()
	if !field.Required {
		options = append([]string{"(blank)"}, options...)
	}
	defaultIndex := 0
	for i, value := range options {
		if value == current && value != "(blank)" {
			defaultIndex = i
		}
	}
	picked, err := e.driver.Select(ctx, SelectConfig{
		Message:      fieldLabel(field),
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.Description,
		PageSize:     e.pageSize,
	})
	if err != nil {
		return err
	}
	if picked < 0 || options[picked] == "(blank)" {
		return nil
	}
	out.Set(field.Name, options[picked])
	return nil
}

func fieldLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func inputHelp(field model.Field) string {
	if field.Widget == model.WidgetDate {
		help := "YYYY, YYYY-MM or YYYY-MM-DD"
		if field.Description != "" {
			help = field.Description + " " + help
		}
		return help
	}
	return field.Description
}

func setTrimmed(out url.Values, key, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		out.Set(key, trimmed)
	}
}

// rowsOf normalises a stored array-of-objects value into row maps.
func rowsOf(value any) []map[string]any {
	switch rows := value.(type) {
	case []map[string]any:
		return rows
	case []any:
		out := make([]map[string]any, 0, len(rows))
		for _, entry := range rows {
			if row, ok := entry.(map[string]any); ok {
				out = append(out, row)
			}
		}
		return out
	default:
		return nil
	}
}
