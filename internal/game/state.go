package game

import "encoding/json"

// GameState is the single mutable aggregate of a playthrough. It is owned by
// an Engine and only mutated through Engine methods.
type GameState struct {
	CurrentScene      int                       `json:"currentSceneIndex"`
	// Variables holds JSON-shaped values. Clone turns other composite
	// values (e.g. []string) into their JSON form.
	Variables         map[string]any            `json:"variables"`
	Characters        map[string]CharacterState `json:"characters"`
	ChoiceHistory     []ChoiceRecord            `json:"choiceHistory"`
	HighlightedChoice int                       `json:"highlightedChoiceIndex"`
}

// CharacterState is the last known presentation of a cast member.
type CharacterState struct {
	Name    string `json:"displayName"`
	Visible bool   `json:"visible"`
	Emotion string `json:"emotion"`
}

// ChoiceRecord is one entry of the choice history.
type ChoiceRecord struct {
	SceneIndex int    `json:"sceneIndex"`
	ChoiceText string `json:"choiceText"`
	NextScene  int    `json:"nextSceneIndex"`
}

// NewGameState returns the startup state for a story: scene 0, the declared
// cast hidden with their starting emotions, no history.
func NewGameState(s *Story) GameState {
	st := GameState{
		Variables:         map[string]any{},
		Characters:        map[string]CharacterState{},
		ChoiceHistory:     []ChoiceRecord{},
		HighlightedChoice: -1,
	}
	if s == nil {
		return st
	}
	for id, def := range s.Characters {
		name := def.Name
		if name == "" {
			name = id
		}
		emotion := def.Emotion
		if emotion == "" {
			emotion = "neutral"
		}
		st.Characters[id] = CharacterState{Name: name, Emotion: emotion}
	}
	return st
}

// Clone returns a deep copy sharing no maps or slices with st.
func (st GameState) Clone() GameState {
	out := st
	out.Variables = copyMap(st.Variables)
	out.Characters = make(map[string]CharacterState, len(st.Characters))
	for k, v := range st.Characters {
		out.Characters[k] = v
	}
	out.ChoiceHistory = make([]ChoiceRecord, len(st.ChoiceHistory))
	copy(out.ChoiceHistory, st.ChoiceHistory)
	return out
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		s := make([]any, len(t))
		for i := range t {
			s[i] = copyValue(t[i])
		}
		return s
	case nil, bool, string, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	default:
		return jsonCopy(v)
	}
}

// jsonCopy copies any other value through its JSON form, the same shape a
// save round trip gives it. Values JSON cannot encode are kept as is.
func jsonCopy(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
