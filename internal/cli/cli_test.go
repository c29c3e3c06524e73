package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightJSON(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(!checkNoColor())

	out := HighlightJSON(`{"provider":"groq","ok":true,"n":2,"e":null}`)

	assert.Contains(t, out, Blue+`"provider"`+ResetCode+":")
	assert.Contains(t, out, Green+`"groq"`+ResetCode)
	assert.Contains(t, out, Yellow+"true"+ResetCode)
	assert.Contains(t, out, Purple+"2"+ResetCode)
	assert.Contains(t, out, DimCode+"null"+ResetCode)
}

func TestHighlightJSON_KeepsLineEndingAndSkipsInvalid(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(!checkNoColor())

	out := HighlightJSON("{\"attempts\":4}\n")
	assert.Equal(t, Blue+`"attempts"`+ResetCode+":"+Purple+"4"+ResetCode+"}\n", strings.TrimPrefix(out, "{"))

	withStack := "{\"error\":\"boom\"}\ngoroutine 1 [running]:\n"
	assert.Equal(t, withStack, HighlightJSON(withStack))
}

func TestStylize_Disabled(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(!checkNoColor())

	assert.Equal(t, "plain", Stylize("plain", Red))
	assert.Equal(t, `{"a":1}`, HighlightJSON(`{"a":1}`))
	assert.Equal(t, "✔", CheckMark())
}
