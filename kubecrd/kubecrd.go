// Package kubecrd extracts validation schemas from Kubernetes
// CustomResourceDefinition bundles and checks served versions against each
// other for structural compatibility.
package kubecrd

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	subschema "github.com/reoring/subschema"
	"github.com/reoring/subschema/history"
)

// Options controls CRD bundle extraction.
type Options struct {
	// Kind filters by spec.names.kind; empty accepts every CRD.
	Kind string
	// ServedOnly skips versions not marked served.
	ServedOnly bool
}

// Diag carries non-fatal warnings produced during extraction.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }

// VersionedSchema is one CRD version's openAPIV3Schema converted into a
// schema document, in bundle declaration order.
type VersionedSchema struct {
	Kind    string // spec.names.kind
	Name    string // version name, e.g. v1beta1, v1
	Served  bool
	Storage bool
	Doc     *subschema.Document
}

// ExtractBundle scans a multi-document YAML bundle and converts every
// matching CustomResourceDefinition version's validation schema. Non-CRD
// documents are skipped; versions without a schema produce warnings.
func ExtractBundle(data []byte, opts Options) ([]VersionedSchema, Diag, error) {
	d := &simpleDiag{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []VersionedSchema
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, d, fmt.Errorf("kubecrd: %w", err)
		}
		m := normalizeDoc(node)
		if m == nil {
			continue
		}
		if k, _ := m["kind"].(string); k != "CustomResourceDefinition" {
			continue
		}
		kind := crdKind(m)
		if opts.Kind != "" && kind != opts.Kind {
			continue
		}
		vs, err := crdVersions(m, kind, opts, d)
		if err != nil {
			return nil, d, err
		}
		out = append(out, vs...)
	}
	if len(out) == 0 {
		if opts.Kind != "" {
			return nil, d, fmt.Errorf("kubecrd: CRD kind %q not found in bundle", opts.Kind)
		}
		return nil, d, errors.New("kubecrd: no CustomResourceDefinition schemas found in bundle")
	}
	return out, d, nil
}

func crdKind(m map[string]any) string {
	spec, _ := m["spec"].(map[string]any)
	names, _ := spec["names"].(map[string]any)
	k, _ := names["kind"].(string)
	return k
}

// crdVersions walks spec.versions[].schema.openAPIV3Schema, falling back to
// the legacy spec.validation.openAPIV3Schema layout.
func crdVersions(m map[string]any, kind string, opts Options, d *simpleDiag) ([]VersionedSchema, error) {
	spec, _ := m["spec"].(map[string]any)
	var out []VersionedSchema
	if vers, ok := spec["versions"].([]any); ok {
		for _, rv := range vers {
			vm, _ := rv.(map[string]any)
			if vm == nil {
				continue
			}
			name, _ := vm["name"].(string)
			served := true
			if sv, ok := vm["served"].(bool); ok {
				served = sv
			}
			storage, _ := vm["storage"].(bool)
			if opts.ServedOnly && !served {
				continue
			}
			sch, _ := vm["schema"].(map[string]any)
			oas, _ := sch["openAPIV3Schema"].(map[string]any)
			if oas == nil {
				d.warnf("version %s of %s has no openAPIV3Schema", name, kind)
				continue
			}
			doc, err := subschema.DocumentFromMap(oas)
			if err != nil {
				return nil, fmt.Errorf("kubecrd: %s version %s: %w", kind, name, err)
			}
			out = append(out, VersionedSchema{Kind: kind, Name: name, Served: served, Storage: storage, Doc: doc})
		}
		return out, nil
	}
	if val, ok := spec["validation"].(map[string]any); ok {
		oas, _ := val["openAPIV3Schema"].(map[string]any)
		if oas == nil {
			d.warnf("legacy validation of %s has no openAPIV3Schema", kind)
			return nil, nil
		}
		name, _ := spec["version"].(string)
		if name == "" {
			name = "legacy"
		}
		doc, err := subschema.DocumentFromMap(oas)
		if err != nil {
			return nil, fmt.Errorf("kubecrd: %s version %s: %w", kind, name, err)
		}
		return []VersionedSchema{{Kind: kind, Name: name, Served: true, Storage: true, Doc: doc}}, nil
	}
	d.warnf("CRD %s declares no versions", kind)
	return nil, nil
}

// Incompat describes a compatibility break between two bundle versions.
type Incompat struct {
	Kind   string
	From   string
	To     string
	Errors subschema.Errors
}

// CompareVersions resolves each schema and checks consecutive pairs under
// the level, in bundle order. An empty result means every step is
// compatible.
func CompareVersions(schemas []VersionedSchema, level history.Level) ([]Incompat, error) {
	var out []Incompat
	var prev *subschema.Object
	var prevVS VersionedSchema
	for _, vs := range schemas {
		obj, err := subschema.Resolve(vs.Doc)
		if err != nil {
			return nil, fmt.Errorf("kubecrd: %s version %s: %w", vs.Kind, vs.Name, err)
		}
		if prev != nil && prevVS.Kind == vs.Kind {
			if errs := history.Check(prev, obj, level); len(errs) > 0 {
				out = append(out, Incompat{Kind: vs.Kind, From: prevVS.Name, To: vs.Name, Errors: errs})
			}
		}
		prev, prevVS = obj, vs
	}
	return out, nil
}
