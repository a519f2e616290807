package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/sells-group/herb-harvest/pkg/anthropic"
	"github.com/sells-group/herb-harvest/pkg/gemini"
)

// Flow names used for logging and metrics.
const (
	FlowRecommend = "recommend_rewards_actions"
	FlowTranslate = "translate_batch"
	FlowVerify    = "verify_harvest_photo"
)

// Completer performs one prompt round-trip against a model.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// CompletionRequest is a single user turn with an optional image and the
// declared output shape.
type CompletionRequest struct {
	Flow   string
	Prompt string
	Image  *Media
	Schema *Schema
}

// Media is a decoded inline image.
type Media struct {
	MIMEType string
	Data     []byte
}

// Completion is the raw model output.
type Completion struct {
	Text         string
	InputTokens  int64
	OutputTokens int64
}

const schemaSuffix = `

Respond with only a JSON object matching this JSON schema:
%s`

// AnthropicCompleter adapts pkg/anthropic to Completer. The schema is
// appended to the prompt.
type AnthropicCompleter struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicCompleter creates an AnthropicCompleter.
func NewAnthropicCompleter(client anthropic.Client, model string, maxTokens int64) *AnthropicCompleter {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &AnthropicCompleter{client: client, model: model, maxTokens: maxTokens}
}

func (c *AnthropicCompleter) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	prompt := req.Prompt
	if req.Schema != nil {
		prompt += fmt.Sprintf(schemaSuffix, req.Schema.JSON())
	}

	msg := anthropic.Message{Role: "user", Content: prompt}
	if req.Image != nil {
		msg.Images = []anthropic.Image{{
			MediaType: req.Image.MIMEType,
			Data:      base64.StdEncoding.EncodeToString(req.Image.Data),
		}}
	}

	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []anthropic.Message{msg},
	})
	if err != nil {
		return nil, err
	}
	resp.Usage.LogCost(c.model, req.Flow)

	return &Completion{
		Text:         resp.Text(),
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}, nil
}

// GeminiCompleter adapts pkg/gemini to Completer. Schemas are sent as the
// native response schema unless they contain a free-form object, which
// Gemini cannot express; those fall back to JSON mode plus a prompt suffix.
type GeminiCompleter struct {
	client gemini.Client
	model  string
}

// NewGeminiCompleter creates a GeminiCompleter.
func NewGeminiCompleter(client gemini.Client, model string) *GeminiCompleter {
	return &GeminiCompleter{client: client, model: model}
}

func (c *GeminiCompleter) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	greq := gemini.GenerateRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		JSON:   req.Schema != nil,
	}
	if req.Schema != nil {
		if req.Schema.FreeForm() {
			greq.Prompt += fmt.Sprintf(schemaSuffix, req.Schema.JSON())
		} else {
			greq.Schema = toGenaiSchema(req.Schema)
		}
	}
	if req.Image != nil {
		greq.Images = []gemini.Image{{MIMEType: req.Image.MIMEType, Data: req.Image.Data}}
	}

	resp, err := c.client.Generate(ctx, greq)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("gemini usage",
		zap.String("model", c.model),
		zap.String("flow", req.Flow),
		zap.Int32("input_tokens", resp.InputTokens),
		zap.Int32("output_tokens", resp.OutputTokens),
	)

	return &Completion{
		Text:         resp.Text,
		InputTokens:  int64(resp.InputTokens),
		OutputTokens: int64(resp.OutputTokens),
	}, nil
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
		Items:       toGenaiSchema(s.Items),
	}
	switch s.Type {
	case TypeObject:
		out.Type = genai.TypeObject
	case TypeArray:
		out.Type = genai.TypeArray
	case TypeBoolean:
		out.Type = genai.TypeBoolean
	case TypeNumber:
		out.Type = genai.TypeNumber
	default:
		out.Type = genai.TypeString
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = toGenaiSchema(v)
		}
	}
	return out
}

// ProviderConfig selects and configures a Completer.
type ProviderConfig struct {
	Provider string

	AnthropicKey       string
	AnthropicModel     string
	AnthropicMaxTokens int64

	GeminiKey   string
	GeminiModel string
}

// NewCompleter builds the Completer named by cfg.Provider.
func NewCompleter(ctx context.Context, cfg ProviderConfig) (Completer, error) {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, eris.New("ai: anthropic.key is required")
		}
		return NewAnthropicCompleter(anthropic.NewClient(cfg.AnthropicKey), cfg.AnthropicModel, cfg.AnthropicMaxTokens), nil
	case "", "gemini":
		client, err := gemini.NewClient(ctx, cfg.GeminiKey)
		if err != nil {
			return nil, eris.Wrap(err, "ai: create gemini completer")
		}
		return NewGeminiCompleter(client, cfg.GeminiModel), nil
	default:
		return nil, eris.Errorf("ai: unknown provider %q", cfg.Provider)
	}
}
