package compiler

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw bytes into a Definition.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML (or JSON) document into a Definition.
func (p *Parser) Parse(data []byte) (*domain.Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to parse definition: empty document")
	}
	return Decode(raw)
}

// Decode maps loosely typed data onto a Definition.
// Decoding is weakly typed: YAML reads `read: 0` as an int, and symbols
// are strings here.
func Decode(raw map[string]any) (*domain.Definition, error) {
	var def domain.Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("definition missing name")
	}
	return &def, nil
}
