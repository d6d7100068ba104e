package subschema

import (
	"fmt"
	"sort"
	"strings"
)

// Subset reports every point where a value permitted by a is not guaranteed
// to be permitted by b. The empty result means a is a subset of b: any
// payload produced under a can be read back under b.
//
// The relation is directional and checks run fail-soft: the walk continues
// past each violation and collects the complete record list. Both input
// trees are read-only to the checker and results never alias them, so the
// same trees may be checked concurrently.
//
// Record order is deterministic: object properties are visited in sorted key
// order and union variants in declaration order.
func Subset(a, b Value) Errors {
	return subset(a, b, nil)
}

func subset(a, b Value, path []string) Errors {
	// Union on the left: every variant must fit b.
	if av, ok := a.(*AnyOf); ok {
		var errs Errors
		for _, v := range av.Variants {
			errs = append(errs, subset(v, b, path)...)
		}
		return errs
	}
	// Union on the right: at least one variant must fit a, otherwise every
	// variant's full record list is reported.
	if bv, ok := b.(*AnyOf); ok {
		all := make([]Errors, len(bv.Variants))
		for i, v := range bv.Variants {
			all[i] = subset(a, v, path)
		}
		for _, es := range all {
			if len(es) == 0 {
				return nil
			}
		}
		var errs Errors
		for _, es := range all {
			errs = append(errs, es...)
		}
		return errs
	}

	switch an := a.(type) {
	case *String:
		return subsetString(an, b, path)
	case *Null, *Boolean, *Integer, *Number:
		if b == nil || a.Kind() != b.Kind() {
			return Errors{mismatch(a, b, path)}
		}
		return nil
	case *Array:
		bn, ok := b.(*Array)
		if !ok {
			return Errors{mismatch(a, b, path)}
		}
		return subset(an.Items, bn.Items, extend(path, "[]"))
	case *Object:
		bn, ok := b.(*Object)
		if !ok {
			return Errors{mismatch(a, b, path)}
		}
		return subsetObject(an, bn, path)
	}
	return Errors{{Path: clonePath(path), A: a, B: b, Msg: MsgUnknownType}}
}

func subsetString(a *String, b Value, path []string) Errors {
	bn, ok := b.(*String)
	if !ok {
		return Errors{mismatch(a, b, path)}
	}
	if a.Format != bn.Format {
		return Errors{{Path: clonePath(path), A: a, B: bn, Msg: MsgFormatMismatch}}
	}
	if bn.Enum == nil {
		return nil
	}
	if a.Enum == nil {
		return Errors{{Path: clonePath(path), A: a, B: bn, Msg: MsgEnumUnbounded}}
	}
	if diff := enumDifference(a.Enum, bn.Enum); len(diff) > 0 {
		return Errors{{
			Path: clonePath(path),
			A:    a,
			B:    bn,
			Msg:  fmt.Sprintf("Following keys not in a: %s", strings.Join(diff, ", ")),
		}}
	}
	return nil
}

func subsetObject(a, b *Object, path []string) Errors {
	var errs Errors
	for _, key := range sortedKeys(b.Properties) {
		av, present := a.Properties[key]
		if !present {
			if containsString(b.Required, key) {
				errs = append(errs, Error{
					Path: extend(path, key),
					A:    a,
					B:    b,
					Msg:  fmt.Sprintf("Key: %s not in %s", key, strings.Join(sortedKeys(a.Properties), ", ")),
				})
			}
			continue
		}
		errs = append(errs, subset(av, b.Properties[key], extend(path, key))...)
	}
	return errs
}

func mismatch(a, b Value, path []string) Error {
	return Error{Path: clonePath(path), A: a, B: b, Msg: MsgTypeMismatch}
}

// enumDifference returns the members of a absent from b, deduplicated and
// sorted so rendered messages are deterministic.
func enumDifference(a, b []string) []string {
	allowed := make(map[string]struct{}, len(b))
	for _, s := range b {
		allowed[s] = struct{}{}
	}
	seen := make(map[string]struct{}, len(a))
	var out []string
	for _, s := range a {
		if _, ok := allowed[s]; ok {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// extend returns a fresh slice; sibling branches must never share a path
// backing array.
func extend(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}

func clonePath(path []string) []string {
	if path == nil {
		return nil
	}
	return append([]string(nil), path...)
}
