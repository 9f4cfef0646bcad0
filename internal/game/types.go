package game

// Position is where a character sprite stands on screen.
type Position string

const (
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionCenter Position = "center"
)

// DefaultEndText is shown when the player advances past the last scene.
const DefaultEndText = "This is the end of the demo. Thank you for playing!"

// Story is the ordered, immutable list of scenes plus the cast they use.
type Story struct {
	Title      string                  `yaml:"title"`
	EndText    string                  `yaml:"endText"`
	Characters map[string]CharacterDef `yaml:"characters"`
	Scenes     []Scene                 `yaml:"scenes"`
}

// CharacterDef declares a cast member and their starting emotion.
type CharacterDef struct {
	Name    string `yaml:"name"`
	Emotion string `yaml:"emotion"`
}

// Scene is one static unit of narrative content.
type Scene struct {
	Background        string           `yaml:"background"`
	Text              string           `yaml:"text"`
	Characters        []SceneCharacter `yaml:"characters"`
	Choices           []Choice         `yaml:"choices"`
	DisableNextButton bool             `yaml:"disableNextButton"`
}

// SceneCharacter places a cast member in a scene.
type SceneCharacter struct {
	Name     string   `yaml:"name"`
	Visible  bool     `yaml:"visible"`
	Emotion  string   `yaml:"emotion"`
	Position Position `yaml:"position"`
	Speaking bool     `yaml:"speaking"`
}

// Choice is a player-selectable option leading to another scene.
type Choice struct {
	Text      string `yaml:"text"`
	NextScene int    `yaml:"nextScene"`
}

// Len returns the number of scenes.
func (s *Story) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Scenes)
}

// Scene returns the scene at index i.
func (s *Story) Scene(i int) (*Scene, error) {
	if i < 0 || i >= s.Len() {
		return nil, outOfRange("scene", i, s.Len())
	}
	return &s.Scenes[i], nil
}

// Last reports whether i is the final scene index.
func (s *Story) Last(i int) bool {
	return i == s.Len()-1
}
