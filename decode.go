package subschema

import (
	"bytes"
	"fmt"
	"io"
	"math"

	j "github.com/goccy/go-json"
)

// Decode parses a schema document from its JSON wire form. Numbers are read
// through json.Number so 64-bit integer enums survive undamaged.
func Decode(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data))
}

// Read parses a schema document from r.
func Read(r io.Reader) (*Document, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("subschema: invalid JSON document: %w", err)
	}
	return DocumentFromMap(raw)
}

// DocumentFromMap builds a Document from an already-decoded object form, as
// produced by JSON or YAML decoding. Both "$defs" and "definitions" name the
// definitions table on input; unknown keys are ignored.
func DocumentFromMap(raw map[string]any) (*Document, error) {
	if t, _ := raw["type"].(string); t != "object" {
		return nil, fmt.Errorf("subschema: document root must have type \"object\", got %q", t)
	}
	doc := &Document{}
	doc.Title, _ = raw["title"].(string)

	defsRaw, ok := raw["$defs"].(map[string]any)
	if !ok {
		defsRaw, _ = raw["definitions"].(map[string]any)
	}
	if len(defsRaw) > 0 {
		doc.Definitions = make(map[string]Value, len(defsRaw))
		for name, dv := range defsRaw {
			dm, ok := dv.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("subschema: $defs.%s: not an object", name)
			}
			v, err := buildNode(dm, "$defs."+name)
			if err != nil {
				return nil, err
			}
			doc.Definitions[name] = v
		}
	}
	if propsRaw, ok := raw["properties"].(map[string]any); ok {
		doc.Properties = make(map[string]Value, len(propsRaw))
		for name, pv := range propsRaw {
			pm, ok := pv.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("subschema: properties.%s: not an object", name)
			}
			v, err := buildNode(pm, "properties."+name)
			if err != nil {
				return nil, err
			}
			doc.Properties[name] = v
		}
	}
	req, err := stringList(raw["required"], "required")
	if err != nil {
		return nil, err
	}
	doc.Required = req
	return doc, nil
}

// NodeFromMap builds a single schema node from its decoded object form.
func NodeFromMap(m map[string]any) (Value, error) {
	return buildNode(m, "schema")
}

// buildNode converts one decoded object into a Value. where names the node's
// location for error context.
func buildNode(m map[string]any, where string) (Value, error) {
	if ref, ok := m["$ref"].(string); ok {
		return &Ref{Target: ref}, nil
	}
	if raw, ok := m["allOf"]; ok {
		conjuncts, err := nodeList(raw, where+".allOf")
		if err != nil {
			return nil, err
		}
		return &AllOf{Conjuncts: conjuncts, Default: scalarValue(m["default"])}, nil
	}
	if raw, ok := m["anyOf"]; ok {
		variants, err := nodeList(raw, where+".anyOf")
		if err != nil {
			return nil, err
		}
		return &AnyOf{Variants: variants, Default: scalarValue(m["default"])}, nil
	}

	typ, _ := m["type"].(string)
	title, _ := m["title"].(string)
	desc, _ := m["description"].(string)
	switch typ {
	case "null":
		return &Null{Title: title, Description: desc}, nil

	case "boolean":
		n := &Boolean{Title: title, Description: desc}
		if d, ok := m["default"]; ok && d != nil {
			b, ok := d.(bool)
			if !ok {
				return nil, fmt.Errorf("subschema: %s.default: not a boolean", where)
			}
			n.Default = &b
		}
		return n, nil

	case "integer":
		n := &Integer{Title: title, Description: desc}
		if raw, ok := m["enum"]; ok {
			list, ok := raw.([]any)
			if !ok {
				return nil, fmt.Errorf("subschema: %s.enum: not an array", where)
			}
			n.Enum = make([]int64, 0, len(list))
			for i, e := range list {
				iv, ok := asInt64(e)
				if !ok {
					return nil, fmt.Errorf("subschema: %s.enum[%d]: not an integer", where, i)
				}
				n.Enum = append(n.Enum, iv)
			}
		}
		if d, ok := m["default"]; ok && d != nil {
			iv, ok := asInt64(d)
			if !ok {
				return nil, fmt.Errorf("subschema: %s.default: not an integer", where)
			}
			n.Default = &iv
		}
		return n, nil

	case "number":
		n := &Number{Title: title, Description: desc}
		if raw, ok := m["enum"]; ok {
			list, ok := raw.([]any)
			if !ok {
				return nil, fmt.Errorf("subschema: %s.enum: not an array", where)
			}
			n.Enum = make([]float64, 0, len(list))
			for i, e := range list {
				fv, ok := asFloat64(e)
				if !ok {
					return nil, fmt.Errorf("subschema: %s.enum[%d]: not a number", where, i)
				}
				n.Enum = append(n.Enum, fv)
			}
		}
		if d, ok := m["default"]; ok && d != nil {
			fv, ok := asFloat64(d)
			if !ok {
				return nil, fmt.Errorf("subschema: %s.default: not a number", where)
			}
			n.Default = &fv
		}
		return n, nil

	case "string":
		n := &String{Title: title, Description: desc}
		n.Format, _ = m["format"].(string)
		if raw, ok := m["enum"]; ok {
			list, ok := raw.([]any)
			if !ok {
				return nil, fmt.Errorf("subschema: %s.enum: not an array", where)
			}
			n.Enum = make([]string, 0, len(list))
			for i, e := range list {
				s, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("subschema: %s.enum[%d]: not a string", where, i)
				}
				n.Enum = append(n.Enum, s)
			}
		}
		if d, ok := m["default"]; ok && d != nil {
			s, ok := d.(string)
			if !ok {
				return nil, fmt.Errorf("subschema: %s.default: not a string", where)
			}
			n.Default = &s
		}
		return n, nil

	case "array":
		im, ok := m["items"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("subschema: %s: array requires an items schema", where)
		}
		items, err := buildNode(im, where+".items")
		if err != nil {
			return nil, err
		}
		return &Array{Title: title, Description: desc, Items: items}, nil

	case "object":
		n := &Object{Title: title, Description: desc}
		if props, ok := m["properties"].(map[string]any); ok {
			n.Properties = make(map[string]Value, len(props))
			for name, pv := range props {
				pm, ok := pv.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("subschema: %s.properties.%s: not an object", where, name)
				}
				v, err := buildNode(pm, where+".properties."+name)
				if err != nil {
					return nil, err
				}
				n.Properties[name] = v
			}
		}
		req, err := stringList(m["required"], where+".required")
		if err != nil {
			return nil, err
		}
		n.Required = req
		return n, nil
	}
	return nil, fmt.Errorf("subschema: %s: unsupported type %q", where, typ)
}

func nodeList(raw any, where string) ([]Value, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("subschema: %s: not an array", where)
	}
	out := make([]Value, 0, len(list))
	for i, item := range list {
		im, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("subschema: %s[%d]: not an object", where, i)
		}
		v, err := buildNode(im, fmt.Sprintf("%s[%d]", where, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func stringList(raw any, where string) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("subschema: %s: not an array of strings", where)
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("subschema: %s[%d]: not a string", where, i)
		}
		out = append(out, s)
	}
	return out, nil
}

// scalarValue normalizes a decoded default for union wrappers to nil, bool,
// int64, float64 or string. Anything else is dropped.
func scalarValue(d any) any {
	switch v := d.(type) {
	case bool, string, int64, float64:
		return v
	case j.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return nil
	case int:
		return int64(v)
	default:
		return nil
	}
}

// asInt64 converts decoded JSON or YAML numbers to int64. Fractional values
// do not convert.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case j.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		i := int64(n)
		if float64(i) == n {
			return i, true
		}
		return 0, false
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case j.Number:
		f, err := n.Float64()
		return f, err == nil
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
