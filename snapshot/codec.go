package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidSnapshot is returned (wrapped) for any document that is not a valid snapshot.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ValidationError lists every schema violation found in an uploaded document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidSnapshot, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSnapshot
}

// Decode reads a snapshot document, validates it against the snapshot schema and parses it.
func Decode(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	result, err := gojsonschema.Validate(snapshotSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		// Not even JSON
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, &ValidationError{Problems: problems}
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return &s, nil
}

// Encode writes the snapshot as indented JSON in the same shape Decode accepts.
func Encode(w io.Writer, s *Snapshot) error {
	if s == nil {
		s = &Snapshot{}
	}
	out := normalized(*s)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Load decodes the snapshot stored at path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save encodes the snapshot to path.
func Save(path string, s *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// normalized replaces nil slices so required arrays are written as [] instead of null.
func normalized(s Snapshot) Snapshot {
	projects := make([]Project, len(s.Projects))
	copy(projects, s.Projects)
	for i := range projects {
		if projects[i].Issues == nil {
			projects[i].Issues = []ProjectItem{}
		}
	}
	s.Projects = projects
	if s.Issues == nil {
		s.Issues = []Issue{}
	}
	if s.Members == nil {
		s.Members = []Member{}
	}
	if s.PullRequests == nil {
		s.PullRequests = []PullRequest{}
	}
	if s.Commits == nil {
		s.Commits = []Commit{}
	}
	return s
}
