package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testStoryYAML = `title: "Maplewood"
characters:
  protagonist:
    name: "Protagonist"
  heroine:
    name: "Heroine"
    emotion: "calm"
scenes:
  - background: "bg/street.png"
    text: "First scene"
    characters:
      - name: protagonist
        visible: true
        position: left
  - text: "Second scene"
    characters:
      - name: heroine
        visible: true
    choices:
      - text: "Back"
        nextScene: 0
      - text: "Stay"
        nextScene: 1
`

func TestLoadStory_Valid(t *testing.T) {
	tmpDir := t.TempDir()
	storyPath := filepath.Join(tmpDir, "test_story.yaml")

	err := os.WriteFile(storyPath, []byte(testStoryYAML), 0o600) //nolint:gosec // test file permissions are acceptable
	if err != nil {
		t.Fatalf("Failed to create test story file: %v", err)
	}

	story, err := LoadStory(storyPath)
	if err != nil {
		t.Fatalf("Unexpected error loading story: %v", err)
	}

	if story.Title != "Maplewood" {
		t.Errorf("Expected title 'Maplewood', got '%s'", story.Title)
	}
	if story.Len() != 2 {
		t.Fatalf("Expected 2 scenes, got %d", story.Len())
	}
	if story.EndText != DefaultEndText {
		t.Errorf("Expected default end text, got '%s'", story.EndText)
	}

	first := story.Scenes[0]
	if first.Background != "bg/street.png" {
		t.Errorf("Expected background 'bg/street.png', got '%s'", first.Background)
	}
	if first.Characters[0].Position != PositionLeft {
		t.Errorf("Expected position left, got '%s'", first.Characters[0].Position)
	}

	second := story.Scenes[1]
	if second.Characters[0].Position != PositionCenter {
		t.Errorf("Expected missing position to default to center, got '%s'", second.Characters[0].Position)
	}
	if len(second.Choices) != 2 {
		t.Fatalf("Expected 2 choices, got %d", len(second.Choices))
	}
	if second.Choices[1].NextScene != 1 {
		t.Errorf("Expected nextScene 1, got %d", second.Choices[1].NextScene)
	}
}

func TestLoadStory_InvalidFile(t *testing.T) {
	_, err := LoadStory("non_existent_file.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestParseStory_InvalidYAML(t *testing.T) {
	_, err := ParseStory([]byte("scenes:\n  - text: [unclosed bracket\n"))
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestParseStory_DanglingChoice(t *testing.T) {
	content := `scenes:
  - text: "Only scene"
    choices:
      - text: "Approach her"
        nextScene: 3
`
	_, err := ParseStory([]byte(content))
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Expected ErrOutOfRange, got %v", err)
	}
}

func TestParseStory_NegativeChoice(t *testing.T) {
	content := `scenes:
  - text: "Only scene"
    choices:
      - text: "Nowhere"
        nextScene: -1
`
	_, err := ParseStory([]byte(content))
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Expected ErrOutOfRange, got %v", err)
	}
}

func TestParseStory_Empty(t *testing.T) {
	_, err := ParseStory([]byte("title: nothing\n"))
	if !errors.Is(err, ErrInvalidStory) {
		t.Fatalf("Expected ErrInvalidStory, got %v", err)
	}
}

func TestParseStory_UndeclaredCharacter(t *testing.T) {
	content := `scenes:
  - text: "Who?"
    characters:
      - name: stranger
        visible: true
`
	_, err := ParseStory([]byte(content))
	if !errors.Is(err, ErrInvalidStory) {
		t.Fatalf("Expected ErrInvalidStory, got %v", err)
	}
}

func TestParseStory_BadPosition(t *testing.T) {
	content := `characters:
  heroine: {name: Heroine}
scenes:
  - text: "Where?"
    characters:
      - name: heroine
        visible: true
        position: upstage
`
	_, err := ParseStory([]byte(content))
	if !errors.Is(err, ErrInvalidStory) {
		t.Fatalf("Expected ErrInvalidStory, got %v", err)
	}
}

func TestParseStory_CustomEndText(t *testing.T) {
	story, err := ParseStory([]byte("endText: \"Fin.\"\nscenes:\n  - text: one\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if story.EndText != "Fin." {
		t.Errorf("Expected end text 'Fin.', got '%s'", story.EndText)
	}
}

func TestStory_Scene(t *testing.T) {
	story, err := ParseStory([]byte(testStoryYAML))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := story.Scene(1); err != nil {
		t.Errorf("Unexpected error for scene 1: %v", err)
	}
	for _, i := range []int{-1, 2, 100} {
		if _, err := story.Scene(i); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Scene(%d): expected ErrOutOfRange, got %v", i, err)
		}
	}
	if !story.Last(1) || story.Last(0) {
		t.Error("Expected only scene 1 to be last")
	}
}

func TestLoadStory_Demo(t *testing.T) {
	st, err := LoadStory(filepath.Join("..", "..", "stories", "demo.yaml"))
	if err != nil {
		t.Fatalf("LoadStory demo: %v", err)
	}
	if st.Len() != 8 {
		t.Errorf("Expected 8 scenes, got %d", st.Len())
	}
	if got := len(st.Scenes[2].Choices); got != 3 {
		t.Errorf("Expected 3 choices in scene 2, got %d", got)
	}
	for i, ch := range st.Scenes[2].Choices {
		if ch.NextScene != 3+i {
			t.Errorf("Choice %d: expected next scene %d, got %d", i, 3+i, ch.NextScene)
		}
	}
}
