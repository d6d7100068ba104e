package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	subschema "github.com/reoring/subschema"
)

// Store abstracts where recorded schema versions live. Version numbers start
// at 1 and grow without gaps under Record.
type Store interface {
	// Versions returns the recorded version numbers in ascending order.
	Versions() ([]int, error)
	// Read returns the document recorded under version.
	Read(version int) (*subschema.Document, error)
	// Write records doc under version.
	Write(version int, doc *subschema.Document) error
}

// DirStore keeps one canonical JSON document per version in a directory,
// named 0001.json, 0002.json and so on. A missing directory reads as empty
// and is created on first write.
type DirStore struct {
	dir string
}

func NewDirStore(dir string) *DirStore { return &DirStore{dir: dir} }

// VersionFilename returns the file name a version is stored under.
func VersionFilename(version int) string {
	return fmt.Sprintf("%04d.json", version)
}

func (s *DirStore) Versions() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: read %s: %w", s.dir, err)
	}
	var versions []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil || n <= 0 {
			continue
		}
		versions = append(versions, n)
	}
	sort.Ints(versions)
	return versions, nil
}

func (s *DirStore) Read(version int) (*subschema.Document, error) {
	path := filepath.Join(s.dir, VersionFilename(version))
	doc, err := subschema.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("history: version %d: %w", version, err)
	}
	return doc, nil
}

func (s *DirStore) Write(version int, doc *subschema.Document) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	path := filepath.Join(s.dir, VersionFilename(version))
	if err := subschema.Dump(doc, path); err != nil {
		return fmt.Errorf("history: version %d: %w", version, err)
	}
	return nil
}
