package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// VerifyInput is a photo as a data URI and the herb it should show.
type VerifyInput struct {
	PhotoDataURI string `json:"photoDataUri" validate:"required,datauri"`
	HerbName     string `json:"herbName" validate:"required"`
}

// VerifyOutput is the model's judgement on the photo.
type VerifyOutput struct {
	IsPhotoGenuine bool   `json:"isPhotoGenuine"`
	Reason         string `json:"reason"`
}

const verifyPrompt = `You are an agricultural expert. Your task is to determine if the provided image is a genuine photo of the specified herb.

Herb to identify: %s
Image to analyze: the attached image

Analyze the image and determine if it contains the herb. Set 'isPhotoGenuine' to true if it does, and false otherwise. Provide a concise reason for your decision.`

// RenderVerifyPrompt renders the verification prompt for herbName.
func RenderVerifyPrompt(herbName string) string {
	return fmt.Sprintf(verifyPrompt, herbName)
}

// ParseDataURI decodes a data:<mime>;base64,<data> URI. Only image MIME
// types are accepted.
func ParseDataURI(uri string) (*Media, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, eris.Wrap(ErrInvalidInput, "ai: data uri: missing data: prefix")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, eris.Wrap(ErrInvalidInput, "ai: data uri: missing payload")
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return nil, eris.Wrap(ErrInvalidInput, "ai: data uri: payload is not base64")
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, eris.Wrapf(ErrInvalidInput, "ai: data uri: %q is not an image type", mime)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, eris.Wrapf(ErrInvalidInput, "ai: data uri: decode payload: %v", err)
	}
	return &Media{MIMEType: mime, Data: data}, nil
}

// VerifyHarvestPhoto asks the model whether the photo shows the herb.
func (c *Client) VerifyHarvestPhoto(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	if err := c.check(FlowVerify, in); err != nil {
		return nil, err
	}
	media, err := ParseDataURI(in.PhotoDataURI)
	if err != nil {
		return nil, err
	}

	raw, err := c.complete(ctx, CompletionRequest{
		Flow:   FlowVerify,
		Prompt: RenderVerifyPrompt(in.HerbName),
		Image:  media,
		Schema: verifySchema,
	})
	if err != nil {
		return nil, err
	}

	out, err := ParseVerifyOutput(raw)
	c.parsed(FlowVerify, err)
	return out, err
}
