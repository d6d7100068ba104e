package subschema

import (
	"errors"
	"fmt"
	"strings"
)

// Checker messages. Report lines are matched verbatim by downstream tooling;
// the wording must not change.
const (
	MsgTypeMismatch   = "Types don't match"
	MsgFormatMismatch = "String formats do not match"
	MsgEnumUnbounded  = "Cannot fit any string into an Enum"
	MsgUnknownType    = "Unknown type"
)

// Resolution faults. Both are wrapped with context by Resolve/ResolveValue and
// respond to errors.Is.
var (
	// ErrUnsupportedAllOf reports an allOf node outside the single-reference
	// aliasing shape.
	ErrUnsupportedAllOf = errors.New("subschema: unsupported allOf shape")
	// ErrUnknownReference reports a $ref whose target name is missing from
	// the definitions table.
	ErrUnknownReference = errors.New("subschema: unknown reference")
)

// Error records a single point where schema a is not a subset of schema b.
type Error struct {
	Path []string // property names plus the literal "[]" for array elements
	A    Value    // offending node on the a side
	B    Value    // offending node on the b side
	Msg  string
}

// String renders the record as one report line:
//
//	At .user.tags.[] Types don't match - a: String b: Integer
//
// A root-level record renders as "At . ...".
func (e Error) String() string {
	return fmt.Sprintf("At .%s %s - a: %s b: %s",
		strings.Join(e.Path, "."), e.Msg, kindName(e.A), kindName(e.B))
}

func kindName(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.Kind().String()
}

// Errors is an ordered collection of subset violations that implements error.
// An empty collection means the subset relation holds.
type Errors []Error

// Error summarizes the first few records.
func (es Errors) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(es)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(es[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Strings renders every record in order, one line per entry.
func (es Errors) Strings() []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.String()
	}
	return out
}

// AsErrors extracts an Errors collection from err, unwrapping as needed.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var es Errors
	if errors.As(err, &es) {
		return es, true
	}
	return nil, false
}
