package game

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadStory loads and validates a story from a YAML file.
func LoadStory(path string) (*Story, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path is cleaned and comes from configuration
	if err != nil {
		return nil, err
	}
	return ParseStory(b)
}

// ParseStory decodes YAML story content, fills defaults and validates it.
func ParseStory(b []byte) (*Story, error) {
	var s Story
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if s.EndText == "" {
		s.EndText = DefaultEndText
	}
	for i := range s.Scenes {
		for j := range s.Scenes[i].Characters {
			if s.Scenes[i].Characters[j].Position == "" {
				s.Scenes[i].Characters[j].Position = PositionCenter
			}
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the authoring invariants: at least one scene, every choice
// targets an existing scene, every scene character is declared in the cast
// and stands at a known position.
func (s *Story) Validate() error {
	if s.Len() == 0 {
		return fmt.Errorf("%w: no scenes", ErrInvalidStory)
	}
	for i, sc := range s.Scenes {
		for j, ch := range sc.Choices {
			if ch.NextScene < 0 || ch.NextScene >= len(s.Scenes) {
				return fmt.Errorf("scene %d choice %d (%q): %w",
					i, j, ch.Text, outOfRange("next scene", ch.NextScene, len(s.Scenes)))
			}
		}
		for _, c := range sc.Characters {
			if _, ok := s.Characters[c.Name]; !ok {
				return fmt.Errorf("%w: scene %d uses undeclared character %q", ErrInvalidStory, i, c.Name)
			}
			switch c.Position {
			case PositionLeft, PositionRight, PositionCenter, "":
			default:
				return fmt.Errorf("%w: scene %d character %q has position %q", ErrInvalidStory, i, c.Name, c.Position)
			}
		}
	}
	return nil
}
