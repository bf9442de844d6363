// Package yamlmap provides a bcollect builder that produces a YAML mapping
// node, keeping entries in the order they were collected.
package yamlmap

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/agbru/bcollect"
)

// Pair is a single mapping entry.
type Pair = bcollect.Pair[*yaml.Node, *yaml.Node]

// String returns a plain string scalar node.
func String(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// Entry returns a string-to-string mapping entry.
func Entry(key, value string) Pair {
	return bcollect.KV(String(key), String(value))
}

// Builder returns a builder for a mapping node. A scalar key that repeats an
// earlier one replaces that entry's value without moving it.
func Builder() bcollect.Builder[Pair, *yaml.Node] {
	return func(entries []Pair) *yaml.Node {
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		index := make(map[scalarKey]int, len(entries))
		for _, e := range entries {
			if k, ok := keyOf(e.Key); ok {
				if pos, seen := index[k]; seen {
					node.Content[pos+1] = e.Value
					continue
				}
				index[k] = len(node.Content)
			}
			node.Content = append(node.Content, e.Key, e.Value)
		}
		return node
	}
}

// Encode writes node as a YAML document.
func Encode(w io.Writer, node *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		enc.Close()
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

type scalarKey struct {
	tag   string
	value string
}

func keyOf(n *yaml.Node) (scalarKey, bool) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return scalarKey{}, false
	}
	return scalarKey{tag: n.ShortTag(), value: n.Value}, true
}
