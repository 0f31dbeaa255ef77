package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/brs/format"
)

// Schema maps hunk names to the kind their payload holds. It is how dump learns types,
// since the buffer itself carries none.
//
//	fields:
//	  red: int32
//	  label: string
//	  origin:
//	    kind: buffer
//	    fields:
//	      x: float64
type Schema struct {
	Fields map[string]Field `yaml:"fields"`
}

// Field describes one hunk name. Fields only applies to buffer kinds.
type Field struct {
	Kind   format.Kind      `yaml:"kind"`
	Fields map[string]Field `yaml:"fields"`
}

// UnmarshalYAML accepts either a bare kind name or a mapping with kind and fields.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}

		kind, err := format.ParseKind(name)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*f = Field{Kind: kind}

		return nil
	}

	type plain Field
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.Kind == format.KindInvalid {
		p.Kind = format.KindBuffer
	}
	if len(p.Fields) > 0 && p.Kind != format.KindBuffer {
		return fmt.Errorf("line %d: only buffer fields may have fields, got %v", node.Line, p.Kind)
	}
	*f = Field(p)

	return nil
}

func loadSchema(path string) (map[string]Field, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}

	return s.Fields, nil
}
