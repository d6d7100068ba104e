package subschema

import (
	"errors"
	"fmt"
	"strings"
)

// Resolve collapses the document's reference indirection into a single
// self-contained tree. The returned Object contains no Ref or AllOf nodes and
// shares no memory with the input: neither the document nor its definitions
// table is ever mutated, so documents may be resolved concurrently.
//
// Reference targets are looked up by the trailing path segment only, so
// "#/$defs/User" and "#/definitions/User" both name the definition "User".
// Cyclic definitions are not detected and will not terminate.
func Resolve(doc *Document) (*Object, error) {
	if doc == nil {
		return nil, errors.New("subschema: nil document")
	}
	out := &Object{Required: append([]string(nil), doc.Required...)}
	if doc.Properties != nil {
		out.Properties = make(map[string]Value, len(doc.Properties))
		for name, v := range doc.Properties {
			rv, err := ResolveValue(v, doc.Definitions)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			out.Properties[name] = rv
		}
	}
	return out, nil
}

// ResolveValue resolves a single node against a definitions table. The result
// is freshly allocated and never aliases the input tree.
func ResolveValue(v Value, defs map[string]Value) (Value, error) {
	switch n := v.(type) {
	case *Null:
		c := *n
		return &c, nil
	case *Boolean:
		c := *n
		return &c, nil
	case *Integer:
		c := *n
		c.Enum = cloneEnum(n.Enum)
		return &c, nil
	case *Number:
		c := *n
		c.Enum = cloneEnum(n.Enum)
		return &c, nil
	case *String:
		c := *n
		c.Enum = cloneEnum(n.Enum)
		return &c, nil
	case *Array:
		items, err := ResolveValue(n.Items, defs)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		return &Array{Title: n.Title, Description: n.Description, Items: items}, nil
	case *Object:
		out := &Object{
			Title:       n.Title,
			Description: n.Description,
			Required:    append([]string(nil), n.Required...),
		}
		if n.Properties != nil {
			out.Properties = make(map[string]Value, len(n.Properties))
			for name, pv := range n.Properties {
				rv, err := ResolveValue(pv, defs)
				if err != nil {
					return nil, fmt.Errorf("property %q: %w", name, err)
				}
				out.Properties[name] = rv
			}
		}
		return out, nil
	case *AnyOf:
		vars := make([]Value, len(n.Variants))
		for i, vv := range n.Variants {
			rv, err := ResolveValue(vv, defs)
			if err != nil {
				return nil, err
			}
			vars[i] = rv
		}
		return &AnyOf{Variants: vars, Default: n.Default}, nil
	case *AllOf:
		return resolveAllOf(n, defs)
	case *Ref:
		return resolveRef(n, defs)
	case nil:
		return nil, errors.New("subschema: nil schema node")
	}
	return nil, fmt.Errorf("subschema: unresolvable node kind %s", v.Kind())
}

// resolveAllOf handles the aliasing wrapper: exactly one Ref conjunct whose
// resolution may receive the wrapper's default.
func resolveAllOf(n *AllOf, defs map[string]Value) (Value, error) {
	if len(n.Conjuncts) != 1 {
		return nil, fmt.Errorf("%w: want exactly one conjunct, got %d", ErrUnsupportedAllOf, len(n.Conjuncts))
	}
	ref, ok := n.Conjuncts[0].(*Ref)
	if !ok {
		return nil, fmt.Errorf("%w: single conjunct must be a reference, got %s", ErrUnsupportedAllOf, n.Conjuncts[0].Kind())
	}
	resolved, err := resolveRef(ref, defs)
	if err != nil {
		return nil, err
	}
	if n.Default != nil {
		// The override lands on the fresh copy; the definitions table keeps
		// the original default.
		applyDefault(resolved, n.Default)
	}
	return resolved, nil
}

func resolveRef(n *Ref, defs map[string]Value) (Value, error) {
	name := refName(n.Target)
	target, ok := defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (from %q)", ErrUnknownReference, name, n.Target)
	}
	return ResolveValue(target, defs)
}

// refName extracts the definition name from a reference target such as
// "#/$defs/User" or "#/definitions/User".
func refName(target string) string {
	if i := strings.LastIndexByte(target, '/'); i >= 0 {
		return target[i+1:]
	}
	return target
}

// cloneEnum copies an enum into fresh backing, preserving nilness: an absent
// enum admits anything, a present-but-empty one admits nothing.
func cloneEnum[E int64 | float64 | string](enum []E) []E {
	if enum == nil {
		return nil
	}
	return append(make([]E, 0, len(enum)), enum...)
}

// applyDefault writes an aliasing wrapper's default onto a freshly resolved
// node. Kinds without a default slot, and values of the wrong shape, are
// ignored.
func applyDefault(v Value, d any) {
	switch n := v.(type) {
	case *Boolean:
		if b, ok := d.(bool); ok {
			n.Default = &b
		}
	case *Integer:
		if i, ok := asInt64(d); ok {
			n.Default = &i
		}
	case *Number:
		if f, ok := asFloat64(d); ok {
			n.Default = &f
		}
	case *String:
		if s, ok := d.(string); ok {
			n.Default = &s
		}
	case *AnyOf:
		n.Default = d
	}
}
