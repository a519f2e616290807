package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTranslateOutput_RejectsMismatches(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "sorry, I cannot help"},
		{"missing field", `{"result": {"Cancel": "x"}}`},
		{"null field", `{"translations": null}`},
		{"array", `{"translations": ["x"]}`},
		{"number value", `{"translations": {"Cancel": 1}}`},
		{"null value", `{"translations": {"Cancel": null}}`},
		{"nested value", `{"translations": {"Cancel": {"text": "x"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTranslateOutput(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchema))
		})
	}
}

func TestParseTranslateOutput_Fenced(t *testing.T) {
	out, err := ParseTranslateOutput("```json\n{\"translations\": {\"{{count}} new\": \"{{count}} नए\"}}\n```")
	require.NoError(t, err)
	assert.Equal(t, "{{count}} नए", out.Translations["{{count}} new"])
}

func TestParseTranslateOutput_Empty(t *testing.T) {
	out, err := ParseTranslateOutput(`{"translations": {}}`)
	require.NoError(t, err)
	assert.Empty(t, out.Translations)
}

func TestParseRecommendOutput(t *testing.T) {
	out, err := ParseRecommendOutput(`{"recommendedActions": []}`)
	require.NoError(t, err)
	assert.Empty(t, out.RecommendedActions)

	for _, raw := range []string{
		`{}`,
		`{"recommendedActions": "do more"}`,
		`{"recommendedActions": [1, 2]}`,
		`{"recommendedActions": ["a", null]}`,
		`nope`,
	} {
		_, err := ParseRecommendOutput(raw)
		assert.True(t, errors.Is(err, ErrSchema), raw)
	}
}

func TestParseVerifyOutput(t *testing.T) {
	out, err := ParseVerifyOutput(`{"isPhotoGenuine": false, "reason": "This is a picture of a cat."}`)
	require.NoError(t, err)
	assert.False(t, out.IsPhotoGenuine)
	assert.Equal(t, "This is a picture of a cat.", out.Reason)

	for _, raw := range []string{
		`{"reason": "x"}`,
		`{"isPhotoGenuine": true}`,
		`{"isPhotoGenuine": "true", "reason": "x"}`,
	} {
		_, err := ParseVerifyOutput(raw)
		assert.True(t, errors.Is(err, ErrSchema), raw)
	}
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("Result: {\"a\":1} done"))
	assert.Equal(t, "plain", cleanJSON("  plain  "))
}

func TestParseDataURI(t *testing.T) {
	m, err := ParseDataURI("data:image/jpeg;base64,/9j/")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", m.MIMEType)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, m.Data)

	for _, uri := range []string{
		"image/jpeg;base64,/9j/",
		"data:image/jpeg;base64",
		"data:image/jpeg,/9j/",
		"data:application/pdf;base64,/9j/",
		"data:image/jpeg;base64,***",
	} {
		_, err := ParseDataURI(uri)
		assert.True(t, errors.Is(err, ErrInvalidInput), uri)
	}
}
