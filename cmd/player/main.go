package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"novella/internal/assets"
	"novella/internal/config"
	"novella/internal/game"
	"novella/internal/input"
	"novella/internal/input/ebitenpad"
	"novella/internal/logger"
	"novella/internal/nav"
	"novella/internal/save"
	"novella/internal/savestore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.Logger())
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	story, err := game.LoadStory(cfg.StoryPath)
	if err != nil {
		lg.Fatal("failed to load story", zap.String("path", cfg.StoryPath), zap.Error(err))
	}

	store, closeStore, err := openStore(cfg, lg)
	if err != nil {
		lg.Fatal("failed to open save store", zap.String("backend", cfg.SaveBackend), zap.Error(err))
	}
	defer closeStore()

	engine, err := game.NewEngine(story, lg)
	if err != nil {
		lg.Fatal("failed to start engine", zap.Error(err))
	}

	saves := save.NewService(store, engine, lg,
		save.WithSlotCount(cfg.SlotCount),
		save.WithKeyPrefix(cfg.SaveKeyPrefix),
	)

	p := newPlayer(cfg, engine, saves, assets.NewResolver(cfg.AssetsDir), lg)
	p.poller = input.NewPoller(p.handleInput, lg)
	p.nav = nav.NewHandler(engine, lg)
	p.menu = nav.NewSlotMenu(saves, lg)

	keyNames, err := cfg.KeyBindings()
	if err != nil {
		lg.Fatal("invalid keyboard mapping", zap.Error(err))
	}
	keyboard, err := ebitenpad.NewKeyboard(keyNames)
	if err != nil {
		lg.Fatal("invalid keyboard mapping", zap.Error(err))
	}
	p.poller.Add("gamepad", ebitenpad.NewGamepad(cfg.Mapping()), input.AllChannels...)
	p.poller.Add("keyboard", keyboard, input.AllChannels...)

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(story.Title)

	lg.Info("player starting",
		zap.String("story", cfg.StoryPath),
		zap.Int("scenes", story.Len()),
		zap.String("save_backend", cfg.SaveBackend),
	)
	if err := ebiten.RunGame(p); err != nil {
		lg.Fatal("player stopped", zap.Error(err))
	}
}

// openStore builds the configured save backend. The returned func releases
// its resources.
func openStore(cfg *config.Config, lg *zap.Logger) (savestore.Store[[]byte], func(), error) {
	switch cfg.SaveBackend {
	case config.BackendMemory:
		return savestore.NewMemoryStore[[]byte](), func() {}, nil
	case config.BackendFile:
		fs, err := savestore.NewFileStore(cfg.SaveDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return savestore.NewRedisStore(client, cfg.RedisKeyPrefix, lg), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown save backend %q", cfg.SaveBackend)
	}
}
