package forms

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/goliatone/go-catalog/pkg/model"
)

// Errors collects validation messages keyed by dotted field path, e.g.
// "locations.0.url".
type Errors map[string][]string

// Add appends a message for a field path.
func (e Errors) Add(path, message string) {
	e[path] = append(e[path], message)
}

// Empty reports whether no messages have been recorded.
func (e Errors) Empty() bool {
	return len(e) == 0
}

var w3cDatePattern = regexp.MustCompile(`^\d{4}(-\d{2}(-\d{2})?)?$`)

// Validate checks decoded values against the form model's constraints and
// returns the accumulated messages. An empty result means the submission is
// acceptable.
func Validate(form model.FormModel, values map[string]any) Errors {
	errs := make(Errors)
	for _, field := range form.Fields {
		validateField(field, field.Name, values[field.Name], values, errs)
	}
	return errs
}

func validateField(field model.Field, path string, value any, siblings map[string]any, errs Errors) {
	present := hasValue(value)

	if field.Required && !present {
		errs.Add(path, "This field is required.")
		return
	}
	if requiredIf := ruleParam(field, model.ValidationRuleRequiredIf, "field"); requiredIf != "" {
		if !present && hasValue(siblings[requiredIf]) {
			errs.Add(path, "This field is required.")
			return
		}
	}
	if !present {
		return
	}

	switch field.Type {
	case model.FieldTypeArray:
		validateArray(field, path, value, errs)
	case model.FieldTypeObject:
		row := cast.ToStringMap(value)
		for _, column := range field.Nested {
			validateField(column, path+"."+column.Name, row[column.Name], row, errs)
		}
	default:
		validateScalar(field, path, value, errs)
	}
}

func validateArray(field model.Field, path string, value any, errs Errors) {
	items := toSlice(value)
	if field.Items == nil {
		return
	}
	for i, item := range items {
		itemPath := fmt.Sprintf("%s.%d", path, i)
		if field.Items.Type == model.FieldTypeObject {
			row := cast.ToStringMap(item)
			for _, column := range field.Items.Nested {
				validateField(column, itemPath+"."+column.Name, row[column.Name], row, errs)
			}
			continue
		}
		validateScalar(*field.Items, itemPath, item, errs)
	}
}

func validateScalar(field model.Field, path string, value any, errs Errors) {
	str := strings.TrimSpace(cast.ToString(value))

	if enum := field.EnumStrings(); len(enum) > 0 && str != "" {
		found := false
		for _, entry := range enum {
			if entry == str {
				found = true
				break
			}
		}
		if !found {
			errs.Add(path, fmt.Sprintf("%q is not one of the permitted values.", str))
		}
	}

	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMaxLength:
			if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && len(str) > limit {
				errs.Add(path, fmt.Sprintf("Must be at most %d characters long.", limit))
			}
		case model.ValidationRuleMinLength:
			if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && len(str) < limit {
				errs.Add(path, fmt.Sprintf("Must be at least %d characters long.", limit))
			}
		case model.ValidationRulePattern:
			pattern := rule.Params["pattern"]
			matched, err := regexp.MatchString(pattern, str)
			if err == nil && !matched {
				errs.Add(path, "Does not match the required pattern.")
			}
		case model.ValidationRuleMin:
			if threshold, err := strconv.ParseFloat(rule.Params["value"], 64); err == nil {
				if number, numErr := cast.ToFloat64E(value); numErr == nil && number < threshold {
					errs.Add(path, fmt.Sprintf("Must be at least %v.", rule.Params["value"]))
				}
			}
		case model.ValidationRuleMax:
			if threshold, err := strconv.ParseFloat(rule.Params["value"], 64); err == nil {
				if number, numErr := cast.ToFloat64E(value); numErr == nil && number > threshold {
					errs.Add(path, fmt.Sprintf("Must be at most %v.", rule.Params["value"]))
				}
			}
		case model.ValidationRuleW3CDate:
			if !w3cDatePattern.MatchString(str) {
				errs.Add(path, "Dates must be in yyyy-mm-dd, yyyy-mm or yyyy format.")
			}
		case model.ValidationRuleEmailOrURL:
			if !isEmailOrURL(str) {
				errs.Add(path, "Please provide a valid email address or URL.")
			}
		}
	}

	// Widget-derived formats apply even without explicit rules, except when a
	// looser emailOrURL rule already covers the field.
	if hasRule(field, model.ValidationRuleEmailOrURL) {
		return
	}
	switch field.Widget {
	case model.WidgetURL:
		if !isHTTPURL(str) {
			errs.Add(path, "Please provide a valid URL starting with http or https.")
		}
	case model.WidgetEmail:
		if !isEmail(str) {
			errs.Add(path, "Please provide a valid email address.")
		}
	}
}

func ruleParam(field model.Field, kind, param string) string {
	for _, rule := range field.Validations {
		if rule.Kind == kind {
			return rule.Params[param]
		}
	}
	return ""
}

func hasRule(field model.Field, kind string) bool {
	for _, rule := range field.Validations {
		if rule.Kind == kind {
			return true
		}
	}
	return false
}

func isEmail(str string) bool {
	addr, err := mail.ParseAddress(str)
	return err == nil && addr.Address == str
}

func isHTTPURL(str string) bool {
	parsed, err := url.Parse(str)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func isEmailOrURL(str string) bool {
	if strings.HasPrefix(str, "mailto:") {
		return isEmail(strings.TrimPrefix(str, "mailto:"))
	}
	return isEmail(str) || isHTTPURL(str)
}

func hasValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func toSlice(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	case nil:
		return nil
	default:
		return []any{v}
	}
}
