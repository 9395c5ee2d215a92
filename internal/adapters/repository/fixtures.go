package repository

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/okian/talentdesk/internal/domain/model"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixturesFS embed.FS

// Seed is the mock data a store starts with.
type Seed struct {
	Candidates []model.Candidate
	Jobs       []model.JobRequisition
	Feedback   []model.InterviewFeedback
	Activity   []model.ActivityItem
	Interviews []model.Interview
	Offers     []model.Offer
}

// DefaultSeed decodes the embedded fixtures.
func DefaultSeed() (Seed, error) {
	return LoadSeed(fixturesFS, "fixtures")
}

// LoadSeed decodes <dir>/{candidates,jobs,feedback,activity,interviews,offers}.yaml
// from fsys. Unknown fields and enum values are rejected. Missing files are empty.
func LoadSeed(fsys fs.FS, dir string) (Seed, error) {
	var s Seed
	files := []struct {
		name string
		dst  any
	}{
		{"candidates.yaml", &s.Candidates},
		{"jobs.yaml", &s.Jobs},
		{"feedback.yaml", &s.Feedback},
		{"activity.yaml", &s.Activity},
		{"interviews.yaml", &s.Interviews},
		{"offers.yaml", &s.Offers},
	}
	for _, f := range files {
		if err := decodeFile(fsys, dir+"/"+f.name, f.dst); err != nil {
			return Seed{}, err
		}
	}
	if err := s.validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

func decodeFile(fsys fs.FS, path string, dst any) error {
	b, err := fs.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrFixtures, path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode %s: %w", ErrFixtures, path, err)
	}
	return nil
}

func (s Seed) validate() error {
	seen := make(map[string]struct{}, len(s.Candidates))
	for _, c := range s.Candidates {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: candidate %s: %w", ErrFixtures, c.ID, err)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate candidate %s", ErrFixtures, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	for _, f := range s.Feedback {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("%w: feedback %s: %w", ErrFixtures, f.ID, err)
		}
	}
	return nil
}
