package ai

import (
	"encoding/json"
)

// Type is a JSON value type in a Schema.
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
)

// Schema is the small JSON-schema subset used to declare completion shapes.
// Providers either pass it to the model natively or append it to the prompt.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`

	// AdditionalProperties describes the values of a free-form object.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`
}

// JSON renders the schema as indented JSON. Map keys are sorted by
// encoding/json so the output is stable.
func (s *Schema) JSON() string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// FreeForm reports whether any node in the schema is an object with
// arbitrary keys.
func (s *Schema) FreeForm() bool {
	if s == nil {
		return false
	}
	if s.AdditionalProperties != nil {
		return true
	}
	if s.Items.FreeForm() {
		return true
	}
	for _, p := range s.Properties {
		if p.FreeForm() {
			return true
		}
	}
	return false
}

var (
	recommendSchema = &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"recommendedActions": {
				Type:        TypeArray,
				Description: "A list of 2-3 recommended actions for the farmer to increase their rewards points.",
				Items:       &Schema{Type: TypeString},
			},
		},
		Required: []string{"recommendedActions"},
	}

	translateSchema = &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"translations": {
				Type:                 TypeObject,
				Description:          "A key-value map where keys are the original English strings and values are the translated strings.",
				AdditionalProperties: &Schema{Type: TypeString},
			},
		},
		Required: []string{"translations"},
	}

	verifySchema = &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"isPhotoGenuine": {
				Type:        TypeBoolean,
				Description: "Whether the photo is a genuine photo of the specified herb.",
			},
			"reason": {
				Type:        TypeString,
				Description: "The reason for the determination.",
			},
		},
		Required: []string{"isPhotoGenuine", "reason"},
	}
)
