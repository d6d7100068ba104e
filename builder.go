package subschema

// Constructors for building schema values in code. They mirror the wire
// model; use struct literals directly when a shape needs annotations.

// NullType returns a schema matching only null.
func NullType() *Null { return &Null{} }

// BoolType returns a schema matching true/false.
func BoolType() *Boolean { return &Boolean{} }

// IntegerType returns an unconstrained integer schema.
func IntegerType() *Integer { return &Integer{} }

// NumberType returns an unconstrained number schema.
func NumberType() *Number { return &Number{} }

// StringType returns an unconstrained string schema.
func StringType() *String { return &String{} }

// FormattedString returns a string schema carrying a format annotation such
// as "date-time" or "uuid".
func FormattedString(format string) *String { return &String{Format: format} }

// StringEnum returns a string schema constrained to the given members.
func StringEnum(members ...string) *String { return &String{Enum: members} }

// IntegerEnum returns an integer schema constrained to the given members.
func IntegerEnum(members ...int64) *Integer { return &Integer{Enum: members} }

// NumberEnum returns a number schema constrained to the given members.
func NumberEnum(members ...float64) *Number { return &Number{Enum: members} }

// ArrayType returns an array schema with the given element schema.
func ArrayType(items Value) *Array { return &Array{Items: items} }

// ObjectType returns an object schema with the given properties, marking the
// listed keys required.
func ObjectType(props map[string]Value, required ...string) *Object {
	return &Object{Properties: props, Required: required}
}

// Union returns a schema matching any of the given variants.
func Union(variants ...Value) *AnyOf { return &AnyOf{Variants: variants} }

// Nullable wraps v in a union with null, the usual optional-field encoding.
func Nullable(v Value) *AnyOf { return &AnyOf{Variants: []Value{v, &Null{}}} }

// DefRef returns an unresolved reference to the named definition.
func DefRef(name string) *Ref { return &Ref{Target: "#/$defs/" + name} }

// Alias returns the aliasing wrapper for the named definition.
func Alias(name string) *AllOf { return &AllOf{Conjuncts: []Value{DefRef(name)}} }

// AliasDefault returns the aliasing wrapper with a default override.
func AliasDefault(name string, def any) *AllOf {
	return &AllOf{Conjuncts: []Value{DefRef(name)}, Default: def}
}
