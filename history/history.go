// Package history records schema versions and verifies that consecutive
// versions stay compatible.
//
// A version is appended only when the resolved shape actually changes, so a
// store reads as the sequence of distinct shapes a schema moved through.
// Verification walks consecutive pairs under a compatibility level.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	subschema "github.com/reoring/subschema"
)

// Level selects the direction of the compatibility guarantee between an
// older and a newer schema version.
type Level string

const (
	// Backward guarantees data written under the old schema is readable
	// under the new one.
	Backward Level = "backward"
	// Forward guarantees data written under the new schema is readable
	// under the old one.
	Forward Level = "forward"
	// Full guarantees both directions.
	Full Level = "full"
)

// ParseLevel maps a user-supplied level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case Backward, Forward, Full:
		return Level(s), nil
	}
	return "", fmt.Errorf("history: unknown compatibility level %q", s)
}

// Check applies the level's direction(s) to a pair of resolved schemas and
// returns every violation.
func Check(older, newer *subschema.Object, level Level) subschema.Errors {
	switch level {
	case Forward:
		return subschema.Subset(newer, older)
	case Full:
		errs := subschema.Subset(older, newer)
		return append(errs, subschema.Subset(newer, older)...)
	default:
		return subschema.Subset(older, newer)
	}
}

// Fingerprint returns a stable hex digest of a resolved schema. Equal shapes
// produce equal digests because canonical encoding sorts keys and fixes
// indentation.
func Fingerprint(v subschema.Value) (string, error) {
	data, err := subschema.EncodeValue(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Record appends doc as a new version when its resolved shape differs from
// the latest recorded one. It returns the version now representing doc and
// whether a write happened.
func Record(st Store, doc *subschema.Document) (int, bool, error) {
	resolved, err := subschema.Resolve(doc)
	if err != nil {
		return 0, false, fmt.Errorf("history: %w", err)
	}
	versions, err := st.Versions()
	if err != nil {
		return 0, false, err
	}
	if len(versions) == 0 {
		if err := st.Write(1, doc); err != nil {
			return 0, false, err
		}
		return 1, true, nil
	}
	latest := versions[len(versions)-1]
	prevDoc, err := st.Read(latest)
	if err != nil {
		return 0, false, err
	}
	prev, err := subschema.Resolve(prevDoc)
	if err != nil {
		return 0, false, fmt.Errorf("history: version %d: %w", latest, err)
	}
	prevPrint, err := Fingerprint(prev)
	if err != nil {
		return 0, false, err
	}
	currPrint, err := Fingerprint(resolved)
	if err != nil {
		return 0, false, err
	}
	if prevPrint == currPrint {
		return latest, false, nil
	}
	next := latest + 1
	if err := st.Write(next, doc); err != nil {
		return 0, false, err
	}
	return next, true, nil
}

// Break describes a compatibility break between two recorded versions.
type Break struct {
	From   int
	To     int
	Errors subschema.Errors
}

// Verify resolves every recorded version and checks each consecutive pair
// under the level. It returns the pairs that break the guarantee; an empty
// result means the whole history is compatible.
func Verify(st Store, level Level) ([]Break, error) {
	versions, err := st.Versions()
	if err != nil {
		return nil, err
	}
	var breaks []Break
	var prev *subschema.Object
	prevVersion := 0
	for _, ver := range versions {
		doc, err := st.Read(ver)
		if err != nil {
			return nil, err
		}
		resolved, err := subschema.Resolve(doc)
		if err != nil {
			return nil, fmt.Errorf("history: version %d: %w", ver, err)
		}
		if prev != nil {
			if errs := Check(prev, resolved, level); len(errs) > 0 {
				breaks = append(breaks, Break{From: prevVersion, To: ver, Errors: errs})
			}
		}
		prev, prevVersion = resolved, ver
	}
	return breaks, nil
}
