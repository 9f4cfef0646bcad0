package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"novella/internal/game"
	"novella/internal/savestore"
)

const (
	DefaultSlotCount = 6
	DefaultKeyPrefix = "saveSlot_"
)

var (
	// ErrSlotEmpty is returned when loading a slot that holds no record.
	ErrSlotEmpty = errors.New("save slot is empty")
	// ErrSlotCorrupt is returned when a slot's data cannot be used.
	ErrSlotCorrupt = errors.New("save slot is corrupt")
	// ErrSlotOutOfRange wraps game.ErrOutOfRange for bad slot indices.
	ErrSlotOutOfRange = fmt.Errorf("save slot %w", game.ErrOutOfRange)
)

// Engine is what the service needs from the scene controller.
type Engine interface {
	Story() *game.Story
	Snapshot() game.GameState
	Restore(game.GameState) error
}

// SlotSummary describes a slot for a save/load menu.
type SlotSummary struct {
	Slot       int
	Empty      bool
	Corrupt    bool
	Timestamp  time.Time
	SceneIndex int
	Preview    string
}

// Service saves and loads engine snapshots.
type Service struct {
	store  savestore.Store[[]byte]
	engine Engine
	slots  int
	prefix string
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSlotCount sets the number of slots (default 6).
func WithSlotCount(n int) Option { return func(s *Service) { s.slots = n } }

// WithKeyPrefix sets the store key prefix (default "saveSlot_").
func WithKeyPrefix(p string) Option { return func(s *Service) { s.prefix = p } }

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// NewService returns a persistence service over store for engine.
func NewService(store savestore.Store[[]byte], engine Engine, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:  store,
		engine: engine,
		slots:  DefaultSlotCount,
		prefix: DefaultKeyPrefix,
		now:    time.Now,
		logger: logger.Named("save"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SlotCount returns the number of slots.
func (s *Service) SlotCount() int { return s.slots }

// Key returns the store key of a slot.
func (s *Service) Key(slot int) string { return fmt.Sprintf("%s%d", s.prefix, slot) }

func (s *Service) checkSlot(slot int) error {
	if slot < 0 || slot >= s.slots {
		return fmt.Errorf("%d not in [0,%d): %w", slot, s.slots, ErrSlotOutOfRange)
	}
	return nil
}

// Save snapshots the current game into slot, replacing whatever it held.
func (s *Service) Save(ctx context.Context, slot int) (Record, error) {
	if err := s.checkSlot(slot); err != nil {
		return Record{}, err
	}
	st := s.engine.Snapshot()
	sc, err := s.engine.Story().Scene(st.CurrentScene)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Version:          CurrentVersion,
		ID:               uuid.NewString(),
		Timestamp:        s.now().UTC().Format(time.RFC3339Nano),
		SceneIndex:       st.CurrentScene,
		SceneTextPreview: Preview(sc.Text),
		FullGameState:    st,
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("encode save: %w", err)
	}
	if err := s.store.Put(ctx, s.Key(slot), b); err != nil {
		return Record{}, fmt.Errorf("write slot %d: %w", slot, err)
	}

	s.logger.Info("game saved",
		zap.Int("slot", slot),
		zap.Int("scene", rec.SceneIndex),
		zap.String("id", rec.ID),
	)
	return rec, nil
}

// Load restores the game from slot. On any error the engine is untouched.
func (s *Service) Load(ctx context.Context, slot int) (Record, error) {
	rec, err := s.read(ctx, slot)
	if err != nil {
		return Record{}, err
	}
	if err := s.engine.Restore(rec.FullGameState); err != nil {
		if errors.Is(err, game.ErrOutOfRange) {
			s.logger.Warn("save slot points outside the story", zap.Int("slot", slot), zap.Error(err))
			return Record{}, fmt.Errorf("slot %d: %w: %v", slot, ErrSlotCorrupt, err)
		}
		return Record{}, err
	}

	s.logger.Info("game loaded",
		zap.Int("slot", slot),
		zap.Int("scene", rec.FullGameState.CurrentScene),
		zap.Int("version", rec.Version),
	)
	return rec, nil
}

func (s *Service) read(ctx context.Context, slot int) (Record, error) {
	if err := s.checkSlot(slot); err != nil {
		return Record{}, err
	}
	b, ok, err := s.store.Get(ctx, s.Key(slot))
	if err != nil {
		return Record{}, fmt.Errorf("read slot %d: %w", slot, err)
	}
	if !ok {
		return Record{}, fmt.Errorf("slot %d: %w", slot, ErrSlotEmpty)
	}
	rec, err := decodeRecord(b)
	if err != nil {
		s.logger.Warn("corrupt save slot", zap.Int("slot", slot), zap.Error(err))
		return Record{}, fmt.Errorf("slot %d: %w: %v", slot, ErrSlotCorrupt, err)
	}
	return rec, nil
}

// Slots summarises every slot. Unreadable records are reported as corrupt
// rather than failing the listing; store failures are returned.
func (s *Service) Slots(ctx context.Context) ([]SlotSummary, error) {
	out := make([]SlotSummary, 0, s.slots)
	for i := 0; i < s.slots; i++ {
		rec, err := s.read(ctx, i)
		switch {
		case err == nil:
			out = append(out, SlotSummary{
				Slot:       i,
				Timestamp:  rec.Time(),
				SceneIndex: rec.SceneIndex,
				Preview:    rec.SceneTextPreview,
			})
		case errors.Is(err, ErrSlotEmpty):
			out = append(out, SlotSummary{Slot: i, Empty: true})
		case errors.Is(err, ErrSlotCorrupt):
			out = append(out, SlotSummary{Slot: i, Corrupt: true})
		default:
			return nil, err
		}
	}
	return out, nil
}

// Delete empties slot.
func (s *Service) Delete(ctx context.Context, slot int) error {
	if err := s.checkSlot(slot); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, s.Key(slot)); err != nil {
		return fmt.Errorf("delete slot %d: %w", slot, err)
	}
	s.logger.Info("save slot deleted", zap.Int("slot", slot))
	return nil
}
