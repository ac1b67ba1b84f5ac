package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validGenerationResult = `{
	"variations": [
		{
			"id": "variation-1",
			"label": "Impact",
			"tone": "impact",
			"summary": "Did impactful things."
		}
	],
	"shared_analysis": {"job_focus_summary": "Backend role."},
	"profile": {"name": "Jane Doe"}
}`

func TestValidateGenerationResult_AcceptsValidPayload(t *testing.T) {
	assert.NoError(t, ValidateGenerationResult(validGenerationResult))
}

func TestValidateGenerationResult_RejectsEmptyVariations(t *testing.T) {
	err := ValidateGenerationResult(`{"variations": [], "profile": {"name": "Jane"}}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateGenerationResult_RejectsUnknownTone(t *testing.T) {
	payload := `{
		"variations": [{"id": "v1", "label": "L", "tone": "aggressive", "summary": "s"}],
		"profile": {"name": "Jane"}
	}`
	err := ValidateGenerationResult(payload)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidateGenerationResult_RejectsMissingProfileName(t *testing.T) {
	payload := `{
		"variations": [{"id": "v1", "label": "L", "tone": "impact", "summary": "s"}],
		"profile": {}
	}`
	err := ValidateGenerationResult(payload)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidatePhrasingResult_AcceptsValidPayload(t *testing.T) {
	payload := `{
		"experience_id": "exp1",
		"variations": [{"id": "p1", "label": "Concise", "bullets": ["Did a thing."]}]
	}`
	assert.NoError(t, ValidatePhrasingResult(payload))
}

func TestValidatePhrasingResult_RejectsMissingBullets(t *testing.T) {
	payload := `{
		"experience_id": "exp1",
		"variations": [{"id": "p1", "label": "Concise"}]
	}`
	err := ValidatePhrasingResult(payload)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidateString_MalformedDocumentIsLoadError(t *testing.T) {
	err := ValidateString("generation_result", GenerationResultSchema, "{not json")
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestValidationError_ListsFieldPaths(t *testing.T) {
	err := ValidateGenerationResult(`{"variations": [{}], "profile": {"name": "J"}}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Error(), "validation failed")
}
