package model

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-catalog/pkg/openapi"
)

func validateOperation(op pkgopenapi.Operation) error {
	switch {
	case op.ID == "":
		return errors.New("model builder: operation id is required")
	case op.Path == "":
		return errors.New("model builder: operation path is required")
	case op.Method == "":
		return errors.New("model builder: operation method is required")
	}
	if err := validateSchema(op.RequestBody); err != nil {
		return fmt.Errorf("model builder: invalid request body: %w", err)
	}
	return nil
}

// validateSchema rejects shapes the form templates cannot express, chiefly
// arrays without an item schema.
func validateSchema(schema pkgopenapi.Schema) error {
	if schema.Type == "array" && schema.Items == nil {
		return errors.New("array schema requires items")
	}
	for _, nested := range schema.Properties {
		if err := validateSchema(nested); err != nil {
			return err
		}
	}
	if schema.Items != nil {
		return validateSchema(*schema.Items)
	}
	return nil
}
