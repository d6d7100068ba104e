package subschema

// Document is a parsed schema document: a named definitions table plus the
// root object shape. type is always "object" on the wire; additional keys are
// ignored on read.
type Document struct {
	Title       string
	Definitions map[string]Value
	Properties  map[string]Value
	Required    []string
}
