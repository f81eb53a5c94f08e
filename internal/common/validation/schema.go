package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// recommendationRequestSchema validates the raw job variables before
// they are bound to the typed request. Numeric range enforcement stays
// with the scorer (out-of-range values are clamped, not rejected);
// the schema only guards structure and required fields.
var recommendationRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"userId", "currentSalary", "profile", "candidatePool"},
	"properties": map[string]interface{}{
		"userId":        map[string]interface{}{"type": "string", "minLength": 1},
		"currentSalary": map[string]interface{}{"type": "number"},
		"profile": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"assessmentType"},
			"properties": map[string]interface{}{
				"assessmentType": map[string]interface{}{
					"type": "string",
					"enum": []interface{}{"ai_risk", "layoff_risk", "income_risk"},
				},
			},
		},
		"activeExperimentIds": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"candidatePool": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"id"},
				"properties": map[string]interface{}{
					"id":                 map[string]interface{}{"type": "string", "minLength": 1},
					"currentSalaryDelta": map[string]interface{}{"type": "number"},
				},
			},
		},
	},
}

// outcomeEventSchema validates one outcome event record.
var outcomeEventSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"userId", "experimentId", "variantId", "outcomeAchieved"},
	"properties": map[string]interface{}{
		"userId":          map[string]interface{}{"type": "string", "minLength": 1},
		"experimentId":    map[string]interface{}{"type": "string", "minLength": 1},
		"variantId":       map[string]interface{}{"type": "string", "minLength": 1},
		"outcomeAchieved": map[string]interface{}{"type": "boolean"},
	},
}

// ValidateRecommendationRequest checks raw request variables against
// the request schema with detailed errors.
func ValidateRecommendationRequest(input map[string]interface{}) *ValidationResult {
	return validate(input, recommendationRequestSchema)
}

// ValidateOutcomeEvent checks one raw outcome event record.
func ValidateOutcomeEvent(input map[string]interface{}) *ValidationResult {
	return validate(input, outcomeEventSchema)
}

func validate(input map[string]interface{}, schema map[string]interface{}) *ValidationResult {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(input)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{Field: "", Message: fmt.Sprintf("schema validation error: %v", err), Code: "SCHEMA_ERROR"},
			},
		}
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    "SCHEMA_VIOLATION",
		})
	}
	return &ValidationResult{Valid: false, Errors: errs}
}

// FormatErrors renders validation errors as one message string.
func FormatErrors(result *ValidationResult) string {
	if result == nil || result.Valid {
		return ""
	}
	msg := ""
	for i, e := range result.Errors {
		if i > 0 {
			msg += "; "
		}
		if e.Field != "" {
			msg += e.Field + ": "
		}
		msg += e.Message
	}
	return msg
}
