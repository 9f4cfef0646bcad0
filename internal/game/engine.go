package game

import (
	"fmt"

	"go.uber.org/zap"
)

// Mode is the presentation mode of the current scene.
type Mode int

const (
	// ModeNext shows the advance affordance (possibly hidden).
	ModeNext Mode = iota
	// ModeChoices shows the choice list.
	ModeChoices
)

func (m Mode) String() string {
	if m == ModeChoices {
		return "choices"
	}
	return "next"
}

// Engine is the scene controller. It owns the GameState and is the only
// thing that mutates it. Engine is not safe for concurrent use; the host
// drives it from a single loop.
type Engine struct {
	story       *Story
	state       GameState
	mode        Mode
	nextVisible bool
	ended       bool
	overlay     []CharacterView
	logger      *zap.Logger
}

// CharacterView is a character as the renderer should draw it.
type CharacterView struct {
	ID       string
	Name     string
	Emotion  string
	Position Position
	Speaking bool
}

// View is the read-only presentation state of the current scene.
type View struct {
	SceneIndex  int
	Background  string
	Text        string
	Characters  []CharacterView
	Choices     []string
	Mode        Mode
	Highlighted int
	NextVisible bool
	Ended       bool
}

// NewEngine validates the story and loads its first scene.
func NewEngine(story *Story, logger *zap.Logger) (*Engine, error) {
	if story == nil {
		return nil, fmt.Errorf("%w: nil story", ErrInvalidStory)
	}
	if err := story.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		story:  story,
		state:  NewGameState(story),
		logger: logger.Named("engine"),
	}
	if err := e.LoadScene(0); err != nil {
		return nil, err
	}
	return e, nil
}

// Story returns the story being played.
func (e *Engine) Story() *Story { return e.story }

// Scene returns the current scene.
func (e *Engine) Scene() *Scene { return &e.story.Scenes[e.state.CurrentScene] }

// CurrentScene returns the current scene index.
func (e *Engine) CurrentScene() int { return e.state.CurrentScene }

// LoadScene makes scene i current. Characters not listed in the scene are
// hidden; listed ones take the scene's visibility and emotion.
func (e *Engine) LoadScene(i int) error {
	sc, err := e.story.Scene(i)
	if err != nil {
		return err
	}

	e.state.CurrentScene = i
	e.overlay = e.applyCharacters(sc)
	e.ended = false

	if len(sc.Choices) > 0 {
		e.mode = ModeChoices
		e.state.HighlightedChoice = 0
		e.nextVisible = false
	} else {
		e.mode = ModeNext
		e.state.HighlightedChoice = -1
		e.nextVisible = !sc.DisableNextButton && !e.story.Last(i)
	}

	e.logger.Debug("scene loaded",
		zap.Int("scene", i),
		zap.Stringer("mode", e.mode),
		zap.Bool("next_visible", e.nextVisible),
	)
	return nil
}

func (e *Engine) applyCharacters(sc *Scene) []CharacterView {
	listed := make(map[string]bool, len(sc.Characters))
	overlay := make([]CharacterView, 0, len(sc.Characters))
	for _, c := range sc.Characters {
		listed[c.Name] = true
		cs, ok := e.state.Characters[c.Name]
		if !ok {
			cs = CharacterState{Name: c.Name, Emotion: "neutral"}
		}
		cs.Visible = c.Visible
		if c.Emotion != "" {
			cs.Emotion = c.Emotion
		}
		e.state.Characters[c.Name] = cs
		if !c.Visible {
			continue
		}
		pos := c.Position
		if pos == "" {
			pos = PositionCenter
		}
		overlay = append(overlay, CharacterView{
			ID:       c.Name,
			Name:     cs.Name,
			Emotion:  cs.Emotion,
			Position: pos,
			Speaking: c.Speaking,
		})
	}
	for id, cs := range e.state.Characters {
		if !listed[id] && cs.Visible {
			cs.Visible = false
			e.state.Characters[id] = cs
		}
	}
	return overlay
}

// Advance moves to the next scene. On the last scene it switches to the
// terminal end-of-story state instead; calling it again is a no-op.
func (e *Engine) Advance() error {
	if e.mode == ModeChoices {
		return fmt.Errorf("advance in choice mode: %w", ErrIntentUnavailable)
	}
	if e.ended {
		return nil
	}
	if e.story.Last(e.state.CurrentScene) {
		e.ended = true
		e.nextVisible = false
		e.logger.Info("end of story reached", zap.Int("scene", e.state.CurrentScene))
		return nil
	}
	if !e.nextVisible {
		return fmt.Errorf("advance from scene %d: %w", e.state.CurrentScene, ErrIntentUnavailable)
	}
	return e.LoadScene(e.state.CurrentScene + 1)
}

// SelectChoice takes choice i of the current scene, records it in the
// choice history and loads its target scene.
func (e *Engine) SelectChoice(i int) error {
	if e.mode != ModeChoices {
		return fmt.Errorf("select choice outside choice mode: %w", ErrIntentUnavailable)
	}
	choices := e.Scene().Choices
	if i < 0 || i >= len(choices) {
		return outOfRange("choice", i, len(choices))
	}
	ch := choices[i]
	if _, err := e.story.Scene(ch.NextScene); err != nil {
		return fmt.Errorf("choice %q: %w", ch.Text, err)
	}

	e.state.ChoiceHistory = append(e.state.ChoiceHistory, ChoiceRecord{
		SceneIndex: e.state.CurrentScene,
		ChoiceText: ch.Text,
		NextScene:  ch.NextScene,
	})
	e.logger.Debug("choice selected",
		zap.Int("scene", e.state.CurrentScene),
		zap.String("choice", ch.Text),
		zap.Int("next", ch.NextScene),
	)
	return e.LoadScene(ch.NextScene)
}

// SetHighlight moves the highlighted choice cursor.
func (e *Engine) SetHighlight(i int) error {
	if e.mode != ModeChoices {
		return fmt.Errorf("highlight outside choice mode: %w", ErrIntentUnavailable)
	}
	if n := len(e.Scene().Choices); i < 0 || i >= n {
		return outOfRange("choice", i, n)
	}
	e.state.HighlightedChoice = i
	return nil
}

func (e *Engine) ChoiceMode() bool  { return e.mode == ModeChoices }
func (e *Engine) ChoiceCount() int  { return len(e.Scene().Choices) }
func (e *Engine) Highlighted() int  { return e.state.HighlightedChoice }
func (e *Engine) NextVisible() bool { return e.nextVisible }
func (e *Engine) Ended() bool       { return e.ended }

// View returns the presentation state for the renderer.
func (e *Engine) View() View {
	sc := e.Scene()
	v := View{
		SceneIndex:  e.state.CurrentScene,
		Background:  sc.Background,
		Text:        sc.Text,
		Characters:  append([]CharacterView(nil), e.overlay...),
		Mode:        e.mode,
		Highlighted: e.state.HighlightedChoice,
		NextVisible: e.nextVisible,
		Ended:       e.ended,
	}
	if e.ended {
		v.Text = e.story.EndText
		if v.Text == "" {
			v.Text = DefaultEndText
		}
	}
	for _, ch := range sc.Choices {
		v.Choices = append(v.Choices, ch.Text)
	}
	return v
}

// Snapshot returns a deep copy of the game state.
func (e *Engine) Snapshot() GameState {
	return e.state.Clone()
}

// Restore replaces the game state wholesale and reloads its current scene.
// The state is checked before anything is replaced.
func (e *Engine) Restore(st GameState) error {
	if _, err := e.story.Scene(st.CurrentScene); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	next := st.Clone()
	e.state = next
	return e.LoadScene(next.CurrentScene)
}
