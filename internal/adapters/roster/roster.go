// Package roster loads team rosters from YAML or JSON files.
package roster

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/meetmind/internal/domain/model"
)

// Load decodes a roster of the form {members: [{name, role, skills}]}.
// JSON documents are accepted as YAML.
func Load(r io.Reader) (model.Team, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Team{}, fmt.Errorf("%w: read: %w", ErrInvalidRoster, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Team{}, ErrEmptyRoster
	}

	var team model.Team
	if err := yaml.Unmarshal(data, &team); err != nil {
		return model.Team{}, fmt.Errorf("%w: decode: %w", ErrInvalidRoster, err)
	}
	if err := Validate(team); err != nil {
		return model.Team{}, err
	}
	for i := range team.Members {
		team.Members[i].Name = strings.TrimSpace(team.Members[i].Name)
		if team.Members[i].Skills == nil {
			team.Members[i].Skills = []string{}
		}
	}
	return team, nil
}

// LoadFile reads a roster from path.
func LoadFile(path string) (model.Team, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return model.Team{}, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}
	defer func() { _ = f.Close() }()

	team, err := Load(f)
	if err != nil {
		return model.Team{}, fmt.Errorf("%s: %w", path, err)
	}
	return team, nil
}

// Validate checks that a roster has members with non-empty names that are
// unique ignoring case.
func Validate(team model.Team) error {
	if len(team.Members) == 0 {
		return ErrEmptyRoster
	}
	seen := make(map[string]int, len(team.Members))
	for i, m := range team.Members {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return fmt.Errorf("%w: member %d has no name", ErrInvalidRoster, i)
		}
		key := strings.ToLower(name)
		if j, dup := seen[key]; dup {
			return fmt.Errorf("%w: member %d duplicates %q from member %d", ErrInvalidRoster, i, name, j)
		}
		seen[key] = i
	}
	return nil
}
