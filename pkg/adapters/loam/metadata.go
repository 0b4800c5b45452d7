package loam

// DefinitionMetadata is the frontmatter of a machine document.
// Scalar fields are untyped because YAML reads `accept: 1` as a number;
// the compiler decoder converts them to strings.
type DefinitionMetadata struct {
	Name         string `json:"name" mapstructure:"name"`
	Description  string `json:"description" mapstructure:"description"`
	Blank        any    `json:"blank" mapstructure:"blank"`
	Sentinel     any    `json:"sentinel" mapstructure:"sentinel"`
	Accept       any    `json:"accept" mapstructure:"accept"`
	Reject       any    `json:"reject" mapstructure:"reject"`
	TapeCapacity any    `json:"tape_capacity" mapstructure:"tape_capacity"`
	States       []any  `json:"states" mapstructure:"states"`
}

func (m DefinitionMetadata) raw() map[string]any {
	raw := map[string]any{
		"name":        m.Name,
		"description": m.Description,
		"states":      m.States,
	}
	set := func(key string, v any) {
		if v != nil {
			raw[key] = v
		}
	}
	set("blank", m.Blank)
	set("sentinel", m.Sentinel)
	set("accept", m.Accept)
	set("reject", m.Reject)
	set("tape_capacity", m.TapeCapacity)
	return raw
}
