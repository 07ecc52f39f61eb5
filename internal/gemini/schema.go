package gemini

// Schema is the subset of the OpenAPI schema dialect that the
// generateContent responseSchema field accepts.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	MinItems    *int               `json:"minItems,omitempty"`
	MaxItems    *int               `json:"maxItems,omitempty"`
}

func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required}
}

func Array(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

func ArrayN(items *Schema, min, max int) *Schema {
	s := Array(items)
	if min > 0 {
		s.MinItems = &min
	}
	if max > 0 {
		s.MaxItems = &max
	}
	return s
}

func String() *Schema  { return &Schema{Type: "string"} }
func Integer() *Schema { return &Schema{Type: "integer"} }
