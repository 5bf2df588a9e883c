package model

import internalmodel "github.com/goliatone/go-catalog/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeArray   = internalmodel.FieldTypeArray
	FieldTypeObject  = internalmodel.FieldTypeObject
)

const (
	WidgetText       = internalmodel.WidgetText
	WidgetTextarea   = internalmodel.WidgetTextarea
	WidgetSelect     = internalmodel.WidgetSelect
	WidgetCheckboxes = internalmodel.WidgetCheckboxes
	WidgetDate       = internalmodel.WidgetDate
	WidgetURL        = internalmodel.WidgetURL
	WidgetEmail      = internalmodel.WidgetEmail
)

const (
	ValidationRuleMin        = internalmodel.ValidationRuleMin
	ValidationRuleMax        = internalmodel.ValidationRuleMax
	ValidationRuleMinLength  = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength  = internalmodel.ValidationRuleMaxLength
	ValidationRulePattern    = internalmodel.ValidationRulePattern
	ValidationRuleRequiredIf = internalmodel.ValidationRuleRequiredIf
	ValidationRuleEmailOrURL = internalmodel.ValidationRuleEmailOrURL
	ValidationRuleW3CDate    = internalmodel.ValidationRuleW3CDate
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
