package subschema

import (
	"fmt"
	"os"
)

// Load reads a schema document from path and resolves it.
func Load(path string) (*Object, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	resolved, err := Resolve(doc)
	if err != nil {
		return nil, fmt.Errorf("subschema: %s: %w", path, err)
	}
	return resolved, nil
}

// LoadDocument reads a schema document from path without resolving it.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("subschema: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return doc, nil
}

// Dump writes the document's canonical wire form to path.
func Dump(doc *Document, path string) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("subschema: %w", err)
	}
	return nil
}
