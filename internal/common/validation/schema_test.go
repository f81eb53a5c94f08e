// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() map[string]interface{} {
	return map[string]interface{}{
		"userId":        "user-42",
		"currentSalary": 70000.0,
		"profile": map[string]interface{}{
			"assessmentType": "layoff_risk",
		},
		"activeExperimentIds": []interface{}{"exp-a"},
		"candidatePool": []interface{}{
			map[string]interface{}{"id": "cand-1", "currentSalaryDelta": 7000.0},
		},
	}
}

func TestValidateRecommendationRequest_Valid(t *testing.T) {
	result := ValidateRecommendationRequest(validRequest())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateRecommendationRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing userId", func(m map[string]interface{}) { delete(m, "userId") }},
		{"empty userId", func(m map[string]interface{}) { m["userId"] = "" }},
		{"missing salary", func(m map[string]interface{}) { delete(m, "currentSalary") }},
		{"salary wrong type", func(m map[string]interface{}) { m["currentSalary"] = "lots" }},
		{"missing profile", func(m map[string]interface{}) { delete(m, "profile") }},
		{"unknown assessment type", func(m map[string]interface{}) {
			m["profile"] = map[string]interface{}{"assessmentType": "palm_reading"}
		}},
		{"missing candidate pool", func(m map[string]interface{}) { delete(m, "candidatePool") }},
		{"candidate without id", func(m map[string]interface{}) {
			m["candidatePool"] = []interface{}{map[string]interface{}{"currentSalaryDelta": 1.0}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRequest()
			tt.mutate(input)

			result := ValidateRecommendationRequest(input)
			require.False(t, result.Valid)
			assert.NotEmpty(t, result.Errors)
			assert.NotEmpty(t, FormatErrors(result))
		})
	}
}

func TestValidateOutcomeEvent(t *testing.T) {
	valid := map[string]interface{}{
		"userId":          "user-42",
		"experimentId":    "exp-a",
		"variantId":       "control",
		"outcomeAchieved": true,
	}
	assert.True(t, ValidateOutcomeEvent(valid).Valid)

	invalid := map[string]interface{}{
		"userId":       "user-42",
		"experimentId": "exp-a",
	}
	result := ValidateOutcomeEvent(invalid)
	assert.False(t, result.Valid)
}

func TestFormatErrors_NilAndValid(t *testing.T) {
	assert.Empty(t, FormatErrors(nil))
	assert.Empty(t, FormatErrors(&ValidationResult{Valid: true}))
}
