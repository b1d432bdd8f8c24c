package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiryu-dev/othello/internal/adapters/bot"
	"github.com/kiryu-dev/othello/internal/config"
	"github.com/kiryu-dev/othello/internal/domain"
	"github.com/kiryu-dev/othello/internal/engine"
	"github.com/kiryu-dev/othello/internal/transport/jsonl"
	"github.com/kiryu-dev/othello/internal/transport/terminal"
	"github.com/kiryu-dev/othello/internal/usecase/game"
	"github.com/kiryu-dev/othello/internal/usecase/opponent"
	"github.com/kiryu-dev/othello/internal/usecase/session"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errCapturedSignal = errors.New("captured signal")

func main() {
	bootLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	cfgPath := flag.String("config", "./config.yml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		bootLogger.Fatal("failed to load config", zap.String("path", *cfgPath), zap.Error(err))
	}
	logger, err := cfg.Log.Build()
	if err != nil {
		bootLogger.Fatal("failed to build logger", zap.Error(err))
	}
	_ = bootLogger.Sync()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errGroup, ctx := errgroup.WithContext(ctx)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.WithMessagef(errCapturedSignal, "%v", s)
		case <-ctx.Done():
			return nil
		}
	})

	seed := cfg.Bot.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var (
		rnd      = rand.New(rand.NewSource(seed))
		clients  = newClientFactory(ctx, cfg, rnd, logger)
		blackCli = clients.build(cfg.Players.Black)
		whiteCli = clients.build(cfg.Players.White)
		game     = game.New(logger)
		board    = engine.New()
		session  = session.New(game, board, cfg.Rounds, logger)
	)
	logger.Info("session configured",
		zap.String("black", string(cfg.Players.Black)),
		zap.String("white", string(cfg.Players.White)),
		zap.Int("rounds", cfg.Rounds),
		zap.Int64("bot seed", seed))
	errGroup.Go(func() error {
		defer cancel()
		return session.Run(ctx, blackCli, whiteCli)
	})

	err = errGroup.Wait()
	switch {
	case errors.Is(err, errCapturedSignal):
		logger.Info("gracefully shutting down: " + err.Error())
	case err != nil:
		logger.Error("session failed", zap.Error(err))
	}
	stats := session.Stats()
	logger.Info("session finished",
		zap.Int32("games", stats.Games),
		zap.Int32("black wins", stats.BlackWins),
		zap.Int32("white wins", stats.WhiteWins),
		zap.Int32("draws", stats.Draws))
}

/* both colours of one kind share a single stdin reader */
type clientFactory struct {
	ctx      context.Context
	cfg      config.Config
	rnd      *rand.Rand
	logger   *zap.Logger
	terminal domain.Client
	jsonl    domain.Client
}

func newClientFactory(ctx context.Context, cfg config.Config, rnd *rand.Rand, logger *zap.Logger) *clientFactory {
	return &clientFactory{
		ctx:    ctx,
		cfg:    cfg,
		rnd:    rnd,
		logger: logger,
	}
}

func (f *clientFactory) build(kind config.PlayerKind) domain.Client {
	switch kind {
	case config.Human:
		if f.terminal == nil {
			f.terminal = terminal.New(f.ctx, os.Stdin, os.Stdout, terminal.WithHints(f.cfg.ShowHints))
		}
		return f.terminal
	case config.JSON:
		if f.jsonl == nil {
			f.jsonl = jsonl.New(f.ctx, os.Stdin, os.Stdout)
		}
		return f.jsonl
	default:
		/* each bot gets its own stream so the two never share a *rand.Rand */
		return bot.New(opponent.New(rand.New(rand.NewSource(f.rnd.Int63()))), f.logger)
	}
}
