package subschema

// Kind identifies a schema node variant.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindNumber
	KindString
	KindArray
	KindObject
	KindAnyOf
	KindAllOf
	KindRef
)

// String returns the variant name used in rendered reports ("a: String b: Integer").
// The spelling is part of the public contract and must not drift.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	case KindAnyOf:
		return "AnyOf"
	case KindAllOf:
		return "AllOf"
	case KindRef:
		return "Ref"
	}
	return "Unknown"
}

// Value is the root schema node interface. The set of implementations is
// closed: Null, Boolean, Integer, Number, String, Array, Object, AnyOf,
// AllOf and Ref. AllOf and Ref only occur before resolution; Resolve
// guarantees neither appears in its output.
type Value interface {
	Kind() Kind
}

// Null matches exactly the JSON null value.
type Null struct {
	Title       string
	Description string
}

func (*Null) Kind() Kind { return KindNull }

// Boolean matches JSON true/false.
type Boolean struct {
	Title       string
	Description string
	Default     *bool
}

func (*Boolean) Kind() Kind { return KindBoolean }

// Integer matches whole JSON numbers. Integer and Number compare as
// distinct kinds, never as a widening pair.
type Integer struct {
	Title       string
	Description string
	Enum        []int64 // nil means unconstrained; empty means matches nothing
	Default     *int64
}

func (*Integer) Kind() Kind { return KindInteger }

// Number matches arbitrary JSON numbers.
type Number struct {
	Title       string
	Description string
	Enum        []float64
	Default     *float64
}

func (*Number) Kind() Kind { return KindNumber }

// String matches JSON strings, optionally narrowed by an enum or a format
// annotation.
type String struct {
	Title       string
	Description string
	Enum        []string // nil means unconstrained; empty means matches nothing
	Format      string   // "" means no format
	Default     *string
}

func (*String) Kind() Kind { return KindString }

// Array matches JSON arrays whose elements all match Items.
type Array struct {
	Title       string
	Description string
	Items       Value
}

func (*Array) Kind() Kind { return KindArray }

// Object matches JSON objects. Properties lists the known keys, Required the
// subset that must be present. Unknown keys are always tolerated.
type Object struct {
	Title       string
	Description string
	Properties  map[string]Value
	Required    []string
}

func (*Object) Kind() Kind { return KindObject }

// AnyOf matches a value accepted by at least one variant.
type AnyOf struct {
	Variants []Value
	Default  any // nil, bool, int64, float64 or string
}

func (*AnyOf) Kind() Kind { return KindAnyOf }

// AllOf is the aliasing wrapper form: exactly one Ref conjunct, optionally
// carrying a default that overrides the referenced node's. Any other shape
// is rejected during resolution.
type AllOf struct {
	Conjuncts []Value
	Default   any
}

func (*AllOf) Kind() Kind { return KindAllOf }

// Ref is an unresolved reference to a named definition, e.g. "#/$defs/User".
// Only the trailing path segment is significant for lookup.
type Ref struct {
	Target string
}

func (*Ref) Kind() Kind { return KindRef }
