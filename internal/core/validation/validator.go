// Package validation checks company settings blobs against a JSON schema
// before they are persisted. Settings are schemaless at the storage layer,
// so this is the only gate between the API and a malformed blob.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(msgs, "; ")
}

// settingsSchema describes the company settings blob. Unknown keys are
// rejected so typos surface at write time instead of being silently stored.
var settingsSchema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"notification_email": map[string]interface{}{
			"type":   "string",
			"format": "email",
		},
		"currency": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"USD", "EUR", "GBP", "CAD", "AUD"},
		},
		"warranty_alert_days": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
			"maximum": 365,
		},
		"default_priority": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"low", "medium", "high"},
		},
		"timezone": map[string]interface{}{
			"type": "string",
		},
	},
}

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSettings checks a company settings blob. An empty blob is valid.
func (v *Validator) ValidateSettings(settings map[string]interface{}) error {
	if len(settings) == 0 {
		return nil
	}
	return v.Validate(settings, settingsSchema)
}

func (v *Validator) Validate(data map[string]interface{}, schema map[string]interface{}) error {
	if len(schema) == 0 {
		return nil
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return err
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return err
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(dataJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return err
	}

	if !result.Valid() {
		var validationErrors []ValidationError
		for _, desc := range result.Errors() {
			validationErrors = append(validationErrors, ValidationError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return &ValidationErrors{Errors: validationErrors}
	}

	return nil
}

func IsValidationError(err error) bool {
	var ve *ValidationErrors
	return errors.As(err, &ve)
}

func GetValidationErrors(err error) *ValidationErrors {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
