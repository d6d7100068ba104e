package subschema

import (
	"fmt"

	j "github.com/goccy/go-json"
)

// Encode renders the document in canonical wire form: the definitions table
// is always written under "$defs", object keys marshal sorted, indentation is
// four spaces. Equal documents therefore produce byte-identical output.
func Encode(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("subschema: nil document")
	}
	return j.MarshalIndent(documentMap(doc), "", "    ")
}

// EncodeValue renders a single schema node in canonical wire form. Resolved
// trees encode this way for fingerprinting and display.
func EncodeValue(v Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("subschema: nil schema node")
	}
	return j.MarshalIndent(nodeMap(v), "", "    ")
}

func documentMap(doc *Document) map[string]any {
	m := map[string]any{"type": "object"}
	if doc.Title != "" {
		m["title"] = doc.Title
	}
	if len(doc.Definitions) > 0 {
		defs := make(map[string]any, len(doc.Definitions))
		for name, v := range doc.Definitions {
			defs[name] = nodeMap(v)
		}
		m["$defs"] = defs
	}
	if len(doc.Properties) > 0 {
		props := make(map[string]any, len(doc.Properties))
		for name, v := range doc.Properties {
			props[name] = nodeMap(v)
		}
		m["properties"] = props
	}
	if len(doc.Required) > 0 {
		m["required"] = doc.Required
	}
	return m
}

func nodeMap(v Value) map[string]any {
	switch n := v.(type) {
	case *Null:
		m := map[string]any{"type": "null"}
		annotate(m, n.Title, n.Description)
		return m
	case *Boolean:
		m := map[string]any{"type": "boolean"}
		annotate(m, n.Title, n.Description)
		if n.Default != nil {
			m["default"] = *n.Default
		}
		return m
	case *Integer:
		m := map[string]any{"type": "integer"}
		annotate(m, n.Title, n.Description)
		if n.Enum != nil {
			m["enum"] = n.Enum
		}
		if n.Default != nil {
			m["default"] = *n.Default
		}
		return m
	case *Number:
		m := map[string]any{"type": "number"}
		annotate(m, n.Title, n.Description)
		if n.Enum != nil {
			m["enum"] = n.Enum
		}
		if n.Default != nil {
			m["default"] = *n.Default
		}
		return m
	case *String:
		m := map[string]any{"type": "string"}
		annotate(m, n.Title, n.Description)
		if n.Enum != nil {
			m["enum"] = n.Enum
		}
		if n.Format != "" {
			m["format"] = n.Format
		}
		if n.Default != nil {
			m["default"] = *n.Default
		}
		return m
	case *Array:
		m := map[string]any{"type": "array"}
		annotate(m, n.Title, n.Description)
		if n.Items != nil {
			m["items"] = nodeMap(n.Items)
		}
		return m
	case *Object:
		m := map[string]any{"type": "object"}
		annotate(m, n.Title, n.Description)
		if len(n.Properties) > 0 {
			props := make(map[string]any, len(n.Properties))
			for name, pv := range n.Properties {
				props[name] = nodeMap(pv)
			}
			m["properties"] = props
		}
		if len(n.Required) > 0 {
			m["required"] = n.Required
		}
		return m
	case *AnyOf:
		list := make([]any, len(n.Variants))
		for i, vv := range n.Variants {
			list[i] = nodeMap(vv)
		}
		m := map[string]any{"anyOf": list}
		if n.Default != nil {
			m["default"] = n.Default
		}
		return m
	case *AllOf:
		list := make([]any, len(n.Conjuncts))
		for i, vv := range n.Conjuncts {
			list[i] = nodeMap(vv)
		}
		m := map[string]any{"allOf": list}
		if n.Default != nil {
			m["default"] = n.Default
		}
		return m
	case *Ref:
		return map[string]any{"$ref": n.Target}
	}
	return map[string]any{}
}

func annotate(m map[string]any, title, desc string) {
	if title != "" {
		m["title"] = title
	}
	if desc != "" {
		m["description"] = desc
	}
}
