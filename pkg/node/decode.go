package node

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode parses one YAML document into a Node tree.
func Decode(data []byte) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return FromYAML(&doc)
}

// FromYAML converts a yaml.v3 node into the generic Node model. Aliases are
// followed to their anchor targets; document wrappers are unwrapped. Duplicate
// mapping keys keep the first key's position and the last key's value.
func FromYAML(n *yaml.Node) (Node, error) {
	if n == nil {
		return Null{}, nil
	}
	switch n.Kind {
	case 0:
		// Zero node from an empty document.
		return Null{}, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return FromYAML(n.Content[0])
	case yaml.AliasNode:
		return FromYAML(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return Null{}, nil
		}
		return Scalar{Raw: n.Value}, nil
	case yaml.SequenceNode:
		items := make([]Node, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := FromYAML(c)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return Sequence{Items: items}, nil
	case yaml.MappingNode:
		entries := make([]Entry, 0, len(n.Content)/2)
		index := make(map[string]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			value, err := FromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			if at, ok := index[key]; ok {
				entries[at].Value = value
				continue
			}
			index[key] = len(entries)
			entries = append(entries, Entry{Key: key, Value: value})
		}
		return Mapping{Entries: entries}, nil
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d at line %d", n.Kind, n.Line)
	}
}
