package ai

import (
	"context"
	"strconv"
	"strings"
)

// TranslateInput is a batch of English UI strings and a target language
// name such as "Hindi".
type TranslateInput struct {
	Texts          []string `json:"texts" validate:"required,min=1,dive,required"`
	TargetLanguage string   `json:"targetLanguage" validate:"required"`
}

// TranslateOutput maps each English string to its translation.
type TranslateOutput struct {
	Translations map[string]string `json:"translations"`
}

// PlaceholderInstruction is included verbatim in every translation prompt.
const PlaceholderInstruction = "IMPORTANT: Do not translate placeholders like '{{placeholder}}'. Return them as they are."

// RenderTranslatePrompt renders the translation prompt. Texts are listed in
// the order given.
func RenderTranslatePrompt(in TranslateInput) string {
	var b strings.Builder
	b.WriteString("You are a professional translator specializing in localizing software for agricultural communities in India.\n")
	b.WriteString("Your task is to translate English UI text into " + in.TargetLanguage + ".\n\n")
	b.WriteString("The application is for farmers who grow and harvest medicinal plants. The tone should be encouraging, clear, and respectful.\n\n")
	b.WriteString("- Translate the meaning and intent, not just the literal words.\n")
	b.WriteString("- Keep translations concise and suitable for a mobile UI.\n")
	b.WriteString("- " + PlaceholderInstruction + "\n\n")
	b.WriteString("Return the translations as a well-formed JSON object where the keys are the original English strings and the values are the translated strings.\n\n")
	b.WriteString("Texts to translate into " + in.TargetLanguage + ":\n")
	for _, t := range in.Texts {
		b.WriteString("- " + strconv.Quote(t) + "\n")
	}
	return b.String()
}

// TranslateBatch translates texts into the target language.
func (c *Client) TranslateBatch(ctx context.Context, in TranslateInput) (*TranslateOutput, error) {
	if err := c.check(FlowTranslate, in); err != nil {
		return nil, err
	}

	raw, err := c.complete(ctx, CompletionRequest{
		Flow:   FlowTranslate,
		Prompt: RenderTranslatePrompt(in),
		Schema: translateSchema,
	})
	if err != nil {
		return nil, err
	}

	out, err := ParseTranslateOutput(raw)
	c.parsed(FlowTranslate, err)
	return out, err
}
