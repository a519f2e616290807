package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// cleanJSON strips markdown code fences and surrounding prose, leaving the
// outermost JSON object.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

func schemaErr(flow, detail string) error {
	return eris.Wrapf(ErrSchema, "ai: parse %s: %s", flow, detail)
}

// ParseRecommendOutput parses a recommendation completion. The
// recommendedActions field must be present and hold only strings.
func ParseRecommendOutput(raw string) (*RecommendOutput, error) {
	var out struct {
		RecommendedActions *[]*string `json:"recommendedActions"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &out); err != nil {
		return nil, schemaErr(FlowRecommend, err.Error())
	}
	if out.RecommendedActions == nil {
		return nil, schemaErr(FlowRecommend, "missing recommendedActions")
	}
	actions := make([]string, 0, len(*out.RecommendedActions))
	for i, a := range *out.RecommendedActions {
		if a == nil {
			return nil, schemaErr(FlowRecommend, fmt.Sprintf("recommendedActions[%d] is null", i))
		}
		actions = append(actions, *a)
	}
	return &RecommendOutput{RecommendedActions: actions}, nil
}

// ParseTranslateOutput parses a translation completion. translations must
// be an object whose every value is a string; null counts as a mismatch.
func ParseTranslateOutput(raw string) (*TranslateOutput, error) {
	var out struct {
		Translations *map[string]json.RawMessage `json:"translations"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &out); err != nil {
		return nil, schemaErr(FlowTranslate, err.Error())
	}
	if out.Translations == nil {
		return nil, schemaErr(FlowTranslate, "missing translations")
	}

	translations := make(map[string]string, len(*out.Translations))
	for k, v := range *out.Translations {
		var s *string
		if err := json.Unmarshal(v, &s); err != nil || s == nil {
			return nil, schemaErr(FlowTranslate, "translation for "+k+" is not a string")
		}
		translations[k] = *s
	}
	return &TranslateOutput{Translations: translations}, nil
}

// ParseVerifyOutput parses a photo verification completion. Both
// isPhotoGenuine and reason are required.
func ParseVerifyOutput(raw string) (*VerifyOutput, error) {
	var out struct {
		IsPhotoGenuine *bool   `json:"isPhotoGenuine"`
		Reason         *string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &out); err != nil {
		return nil, schemaErr(FlowVerify, err.Error())
	}
	if out.IsPhotoGenuine == nil {
		return nil, schemaErr(FlowVerify, "missing isPhotoGenuine")
	}
	if out.Reason == nil {
		return nil, schemaErr(FlowVerify, "missing reason")
	}
	return &VerifyOutput{IsPhotoGenuine: *out.IsPhotoGenuine, Reason: *out.Reason}, nil
}
