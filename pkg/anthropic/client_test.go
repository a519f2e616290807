package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSDKMessages_ImageBeforeText(t *testing.T) {
	msgs := toSDKMessages([]Message{{
		Role:    "user",
		Content: "Is this neem?",
		Images:  []Image{{MediaType: "image/png", Data: "aGVsbG8="}},
	}})

	assert.Len(t, msgs, 1)
	assert.Equal(t, "user", string(msgs[0].Role))
	assert.Len(t, msgs[0].Content, 2)
	assert.NotNil(t, msgs[0].Content[0].OfImage)
	assert.NotNil(t, msgs[0].Content[1].OfText)
	assert.Equal(t, "Is this neem?", msgs[0].Content[1].OfText.Text)
}

func TestToSDKMessages_AssistantRole(t *testing.T) {
	msgs := toSDKMessages([]Message{{Role: "assistant", Content: "{"}})
	assert.Equal(t, "assistant", string(msgs[0].Role))
	assert.Len(t, msgs[0].Content, 1)
}

func TestMessageResponse_Text(t *testing.T) {
	r := &MessageResponse{Content: []ContentBlock{
		{Type: "text", Text: `{"a":`},
		{Type: "tool_use", Text: "ignored"},
		{Type: "text", Text: `1}`},
	}}
	assert.Equal(t, `{"a":1}`, r.Text())
}

func TestEstimateCost(t *testing.T) {
	u := TokenUsage{InputTokens: 1_000_000, OutputTokens: 1_000_000}
	assert.InDelta(t, 4.80, u.EstimateCost("claude-haiku-4-5-20251001"), 0.0001)
	assert.Zero(t, u.EstimateCost("unknown-model"))
}
