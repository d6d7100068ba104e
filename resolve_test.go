package subschema_test

import (
	"errors"
	"strings"
	"testing"

	subschema "github.com/reoring/subschema"
)

func TestResolve_InlinesDefinitions(t *testing.T) {
	doc := &subschema.Document{
		Title: "Account",
		Definitions: map[string]subschema.Value{
			"User": subschema.ObjectType(map[string]subschema.Value{
				"name": subschema.StringType(),
			}, "name"),
		},
		Properties: map[string]subschema.Value{"user": subschema.DefRef("User")},
		Required:   []string{"user"},
	}
	obj, err := subschema.Resolve(doc)
	if err != nil {
		t.Fatalf("resolve err: %v", err)
	}
	user, ok := obj.Properties["user"].(*subschema.Object)
	if !ok {
		t.Fatalf("expected inlined object, got %T", obj.Properties["user"])
	}
	if _, ok := user.Properties["name"].(*subschema.String); !ok {
		t.Fatalf("expected string property, got %T", user.Properties["name"])
	}
}

func TestResolve_OutputContainsNoReferences(t *testing.T) {
	doc := &subschema.Document{
		Title: "Deep",
		Definitions: map[string]subschema.Value{
			"Inner": subschema.StringType(),
			"Outer": subschema.ObjectType(map[string]subschema.Value{
				"x":    subschema.DefRef("Inner"),
				"xs":   subschema.ArrayType(subschema.DefRef("Inner")),
				"pick": subschema.Union(subschema.DefRef("Inner"), subschema.NullType()),
			}, "x"),
		},
		Properties: map[string]subschema.Value{"o": subschema.Alias("Outer")},
		Required:   []string{"o"},
	}
	obj, err := subschema.Resolve(doc)
	if err != nil {
		t.Fatalf("resolve err: %v", err)
	}
	wire, err := subschema.EncodeValue(obj)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if strings.Contains(string(wire), "$ref") || strings.Contains(string(wire), "allOf") {
		t.Fatalf("resolved tree still carries references:\n%s", wire)
	}
}

func TestResolve_TrailingSegmentLookup(t *testing.T) {
	doc := &subschema.Document{
		Title:       "Legacy",
		Definitions: map[string]subschema.Value{"User": subschema.StringType()},
		Properties: map[string]subschema.Value{
			"a": &subschema.Ref{Target: "#/definitions/User"},
			"b": &subschema.Ref{Target: "#/$defs/User"},
		},
	}
	obj, err := subschema.Resolve(doc)
	if err != nil {
		t.Fatalf("resolve err: %v", err)
	}
	for _, key := range []string{"a", "b"} {
		if _, ok := obj.Properties[key].(*subschema.String); !ok {
			t.Fatalf("property %s: expected string, got %T", key, obj.Properties[key])
		}
	}
}

func TestResolve_AliasDefaultOverride(t *testing.T) {
	doc := &subschema.Document{
		Title: "Settings",
		Definitions: map[string]subschema.Value{
			"Role": subschema.StringEnum("admin", "user"),
		},
		Properties: map[string]subschema.Value{
			"role": subschema.AliasDefault("Role", "user"),
		},
	}
	obj, err := subschema.Resolve(doc)
	if err != nil {
		t.Fatalf("resolve err: %v", err)
	}
	role, ok := obj.Properties["role"].(*subschema.String)
	if !ok {
		t.Fatalf("expected string, got %T", obj.Properties["role"])
	}
	if role.Default == nil || *role.Default != "user" {
		t.Fatalf("expected default override \"user\", got %v", role.Default)
	}
	if len(role.Enum) != 2 {
		t.Fatalf("enum lost during aliasing: %v", role.Enum)
	}
}

func TestResolve_AliasDefault_DoesNotLeakIntoSharedDefinition(t *testing.T) {
	doc := &subschema.Document{
		Title: "Shared",
		Definitions: map[string]subschema.Value{
			"Role": subschema.StringEnum("admin", "user"),
		},
		Properties: map[string]subschema.Value{
			"primary":   subschema.AliasDefault("Role", "admin"),
			"secondary": subschema.Alias("Role"),
		},
	}
	obj, err := subschema.Resolve(doc)
	if err != nil {
		t.Fatalf("resolve err: %v", err)
	}
	primary := obj.Properties["primary"].(*subschema.String)
	secondary := obj.Properties["secondary"].(*subschema.String)
	if primary.Default == nil || *primary.Default != "admin" {
		t.Fatalf("expected override on aliased copy, got %v", primary.Default)
	}
	if secondary.Default != nil {
		t.Fatalf("override leaked into sibling use of the definition: %v", *secondary.Default)
	}
	if def := doc.Definitions["Role"].(*subschema.String); def.Default != nil {
		t.Fatalf("override leaked into the definitions table: %v", *def.Default)
	}
}

func TestResolve_AliasDefault_IgnoredOnSlotlessKind(t *testing.T) {
	doc := &subschema.Document{
		Title:       "Odd",
		Definitions: map[string]subschema.Value{"Nothing": subschema.NullType()},
		Properties: map[string]subschema.Value{
			"n": subschema.AliasDefault("Nothing", "x"),
		},
	}
	obj, err := subschema.Resolve(doc)
	if err != nil {
		t.Fatalf("resolve err: %v", err)
	}
	if _, ok := obj.Properties["n"].(*subschema.Null); !ok {
		t.Fatalf("expected null, got %T", obj.Properties["n"])
	}
}

func TestResolve_DocumentNotMutated(t *testing.T) {
	doc := &subschema.Document{
		Title: "Frozen",
		Definitions: map[string]subschema.Value{
			"Role": subschema.StringEnum("admin", "user"),
			"User": subschema.ObjectType(map[string]subschema.Value{
				"role": subschema.AliasDefault("Role", "admin"),
				"tags": subschema.ArrayType(subschema.StringType()),
			}, "role"),
		},
		Properties: map[string]subschema.Value{"user": subschema.DefRef("User")},
		Required:   []string{"user"},
	}
	before, err := subschema.Encode(doc)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	obj, err := subschema.Resolve(doc)
	if err != nil {
		t.Fatalf("resolve err: %v", err)
	}
	// Mutating the output must not reach back into the document either.
	obj.Required = append(obj.Required, "extra")
	obj.Properties["user"].(*subschema.Object).Properties["role"].(*subschema.String).Enum[0] = "changed"

	after, err := subschema.Encode(doc)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("resolution mutated the document:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestResolve_EmptyEnumStaysEmpty(t *testing.T) {
	doc, err := subschema.Decode([]byte(`{
		"type": "object",
		"properties": {"a": {"type": "string", "enum": []}},
		"required": ["a"]
	}`))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	obj, err := subschema.Resolve(doc)
	if err != nil {
		t.Fatalf("resolve err: %v", err)
	}
	v, ok := obj.Properties["a"].(*subschema.String)
	if !ok {
		t.Fatalf("expected string, got %T", obj.Properties["a"])
	}
	if v.Enum == nil {
		t.Fatalf("resolution turned the empty enum into an absent one")
	}
	// The surviving empty enum rejects every string yet vacuously fits
	// into any enum.
	expectLines(t, report(mustResolve(t, strOnly()), obj), []string{
		"At .a Cannot fit any string into an Enum - a: String b: String",
	})
	expectLines(t, report(obj, subschema.ObjectType(map[string]subschema.Value{
		"a": subschema.StringEnum("x"),
	}, "a")), nil)
}

func TestResolve_UnknownReference_Fails(t *testing.T) {
	doc := &subschema.Document{
		Title:      "Broken",
		Properties: map[string]subschema.Value{"user": subschema.DefRef("Missing")},
	}
	_, err := subschema.Resolve(doc)
	if err == nil {
		t.Fatalf("expected unknown reference error")
	}
	if !errors.Is(err, subschema.ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got: %v", err)
	}
	if !strings.Contains(err.Error(), "Missing") {
		t.Fatalf("error should name the missing definition: %v", err)
	}
}

func TestResolve_AllOfMultipleConjuncts_Fails(t *testing.T) {
	doc := &subschema.Document{
		Title: "Multi",
		Definitions: map[string]subschema.Value{
			"A": subschema.StringType(),
			"B": subschema.IntegerType(),
		},
		Properties: map[string]subschema.Value{
			"v": &subschema.AllOf{Conjuncts: []subschema.Value{subschema.DefRef("A"), subschema.DefRef("B")}},
		},
	}
	_, err := subschema.Resolve(doc)
	if !errors.Is(err, subschema.ErrUnsupportedAllOf) {
		t.Fatalf("expected ErrUnsupportedAllOf, got: %v", err)
	}
}

func TestResolve_AllOfNonRefConjunct_Fails(t *testing.T) {
	doc := &subschema.Document{
		Title: "Inline",
		Properties: map[string]subschema.Value{
			"v": &subschema.AllOf{Conjuncts: []subschema.Value{subschema.StringType()}},
		},
	}
	_, err := subschema.Resolve(doc)
	if !errors.Is(err, subschema.ErrUnsupportedAllOf) {
		t.Fatalf("expected ErrUnsupportedAllOf, got: %v", err)
	}
}

func TestResolveValue_AnyOfVariantsResolved(t *testing.T) {
	defs := map[string]subschema.Value{"S": subschema.StringType()}
	v, err := subschema.ResolveValue(subschema.Union(subschema.DefRef("S"), subschema.NullType()), defs)
	if err != nil {
		t.Fatalf("resolve err: %v", err)
	}
	u, ok := v.(*subschema.AnyOf)
	if !ok {
		t.Fatalf("expected union, got %T", v)
	}
	if _, ok := u.Variants[0].(*subschema.String); !ok {
		t.Fatalf("variant 0 not inlined: %T", u.Variants[0])
	}
	if _, ok := u.Variants[1].(*subschema.Null); !ok {
		t.Fatalf("variant 1 changed kind: %T", u.Variants[1])
	}
}
