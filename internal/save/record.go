// Package save persists engine snapshots into numbered slots.
package save

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"novella/internal/game"
)

// CurrentVersion is the snapshot schema written by this build. Records
// without a version field are treated as version 0 and still load.
const CurrentVersion = 1

// PreviewLength is the number of characters kept in SceneTextPreview.
const PreviewLength = 50

// Record is what one slot holds.
type Record struct {
	Version          int            `json:"version"`
	ID               string         `json:"id,omitempty"`
	Timestamp        string         `json:"timestamp"`
	SceneIndex       int            `json:"sceneIndex"`
	SceneTextPreview string         `json:"sceneTextPreview"`
	FullGameState    game.GameState `json:"fullGameState"`
}

// Time parses Timestamp; the zero time is returned when it is malformed.
func (r Record) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Preview truncates text to PreviewLength characters, adding "..." when
// something was cut.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	r := []rune(text)
	return string(r[:PreviewLength]) + "..."
}

// recordWire decodes a stored record leniently: choiceHistory is kept raw
// so a missing or non-array value can be repaired instead of failing the
// whole load.
type recordWire struct {
	Version          int     `json:"version"`
	ID               string  `json:"id"`
	Timestamp        string  `json:"timestamp"`
	SceneIndex       int     `json:"sceneIndex"`
	SceneTextPreview string  `json:"sceneTextPreview"`
	FullGameState    *wireGS `json:"fullGameState"`
}

type wireGS struct {
	CurrentScene      *int                           `json:"currentSceneIndex"`
	Variables         map[string]any                 `json:"variables"`
	Characters        map[string]game.CharacterState `json:"characters"`
	ChoiceHistory     json.RawMessage                `json:"choiceHistory"`
	HighlightedChoice *int                           `json:"highlightedChoiceIndex"`
}

func decodeRecord(b []byte) (Record, error) {
	var w recordWire
	if err := json.Unmarshal(b, &w); err != nil {
		return Record{}, err
	}
	if w.Version > CurrentVersion {
		return Record{}, fmt.Errorf("unsupported save version %d", w.Version)
	}
	if w.FullGameState == nil {
		return Record{}, fmt.Errorf("missing fullGameState")
	}
	if w.FullGameState.CurrentScene == nil {
		return Record{}, fmt.Errorf("missing currentSceneIndex")
	}

	st := game.GameState{
		CurrentScene:      *w.FullGameState.CurrentScene,
		Variables:         w.FullGameState.Variables,
		Characters:        w.FullGameState.Characters,
		ChoiceHistory:     decodeHistory(w.FullGameState.ChoiceHistory),
		HighlightedChoice: -1,
	}
	if w.FullGameState.HighlightedChoice != nil {
		st.HighlightedChoice = *w.FullGameState.HighlightedChoice
	}
	if st.Variables == nil {
		st.Variables = map[string]any{}
	}
	if st.Characters == nil {
		st.Characters = map[string]game.CharacterState{}
	}

	return Record{
		Version:          w.Version,
		ID:               w.ID,
		Timestamp:        w.Timestamp,
		SceneIndex:       w.SceneIndex,
		SceneTextPreview: w.SceneTextPreview,
		FullGameState:    st,
	}, nil
}

// decodeHistory returns an empty history for anything that is not a JSON
// array of choice records.
func decodeHistory(raw json.RawMessage) []game.ChoiceRecord {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []game.ChoiceRecord{}
	}
	var hist []game.ChoiceRecord
	if err := json.Unmarshal(raw, &hist); err != nil {
		return []game.ChoiceRecord{}
	}
	return hist
}
