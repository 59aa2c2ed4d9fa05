package yamltree

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is a decoded YAML document: the node tree (for positions) and a
// JSON-compatible value (for validation).
type Document struct {
	root  *yaml.Node
	Value any
}

// Decode parses the first YAML document in data. Mappings become
// map[string]any, sequences []any, and numbers json.Number. Scalar
// resolution is whatever yaml.v3 does when decoding into any, so "off" stays
// a string and timestamps stay strings.
func Decode(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	doc := &Document{root: &root}
	if root.Kind == 0 {
		// empty input
		return doc, nil
	}
	var v any
	if err := root.Decode(&v); err != nil {
		return nil, err
	}
	doc.Value = FromValue(v)
	return doc, nil
}

// FromValue converts YAML-decoded values (which may contain map[any]any and
// native Go numbers) into a JSON-like tree.
func FromValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = FromValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[keyString(k)] = FromValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = FromValue(t[i])
		}
		return arr
	case int:
		return json.Number(strconv.Itoa(t))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	case *big.Int:
		return json.Number(t.String())
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			// not representable as a JSON number
			return strconv.FormatFloat(t, 'g', -1, 64)
		}
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
	default:
		return v
	}
}

func keyString(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		return fmt.Sprint(t)
	}
}

// Position returns the 1-based line and column of the node addressed by the
// given location segments (unescaped JSON Pointer tokens). Mapping keys are
// matched by decoded key text. It returns 0, 0 when the node is not found.
func (d *Document) Position(location []string) (line, col int) {
	if d == nil || d.root == nil || d.root.Kind == 0 {
		return 0, 0
	}
	n := d.root
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return 0, 0
		}
		n = n.Content[0]
	}
	for _, seg := range location {
		n = resolveAlias(n)
		switch n.Kind {
		case yaml.MappingNode:
			var next *yaml.Node
			for i := 0; i+1 < len(n.Content); i += 2 {
				if n.Content[i].Value == seg {
					next = n.Content[i+1]
				}
			}
			if next == nil {
				return 0, 0
			}
			n = next
		case yaml.SequenceNode:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(n.Content) {
				return 0, 0
			}
			n = n.Content[idx]
		default:
			return 0, 0
		}
	}
	return n.Line, n.Column
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
