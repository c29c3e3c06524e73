package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/nulzo/summary-gateway/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError_UsesJSONNames(t *testing.T) {
	v := New()

	err := binding.Validator.ValidateStruct(&api.SessionReport{SiteName: "Baquedano", Duration: -1, Provider: "mistral"})
	require.Error(t, err)

	errs := v.ParseError(err)
	assert.Contains(t, errs, "siteId")
	assert.Contains(t, errs, "expertName")
	assert.Contains(t, errs, "duration")
	assert.Equal(t, "must be one of [gemini, openai, anthropic, groq, openrouter]", errs["provider"])
	assert.NotContains(t, errs, "siteName")
}

func TestParseError_DiveIntoSlices(t *testing.T) {
	v := New()

	err := binding.Validator.ValidateStruct(&api.RecommendationRequest{Equipment: []string{"Escalera 3", ""}, Issue: "ruido"})
	require.Error(t, err)

	errs := v.ParseError(err)
	assert.Contains(t, errs, "equipment[1]")
}

func TestParseError_NonValidationError(t *testing.T) {
	v := New()
	assert.Equal(t, map[string]string{"body": "Invalid request body format. Please fix your payload."}, v.ParseError(assert.AnError))
}
