package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/kiryu-dev/othello/internal/domain"
	"github.com/kiryu-dev/othello/internal/usecase/game"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type Stats struct {
	Games     int32
	BlackWins int32
	WhiteWins int32
	Draws     int32
}

type useCase struct {
	game      domain.GameUseCase
	board     domain.Engine
	rounds    int
	games     *atomic.Int32
	blackWins *atomic.Int32
	whiteWins *atomic.Int32
	draws     *atomic.Int32
	logger    *zap.Logger
}

// New returns a session that plays rounds games in a row on board. Zero
// rounds means no limit.
func New(game domain.GameUseCase, board domain.Engine, rounds int, logger *zap.Logger) *useCase {
	return &useCase{
		game:      game,
		board:     board,
		rounds:    rounds,
		games:     atomic.NewInt32(0),
		blackWins: atomic.NewInt32(0),
		whiteWins: atomic.NewInt32(0),
		draws:     atomic.NewInt32(0),
		logger:    logger,
	}
}

func (u *useCase) Run(ctx context.Context, blackCli, whiteCli domain.Client) error {
	for round := 1; u.rounds == 0 || round <= u.rounds; round++ {
		if ctx.Err() != nil {
			return nil
		}
		gameUuid := uuid.NewString()
		u.board.Reset()
		var (
			black = domain.NewPlayer(gameUuid, blackCli, domain.Black)
			white = domain.NewPlayer(gameUuid, whiteCli, domain.White)
		)
		u.logger.Info("starting round", zap.Int("round", round), zap.String("game uuid", gameUuid))
		score, err := u.game.Play(ctx, u.board, black, white)
		switch {
		case errors.Is(err, game.ErrPlayerLeft):
			u.logger.Info("player left, closing session", zap.String("game uuid", gameUuid),
				zap.String("reason", err.Error()))
			return nil
		case ctx.Err() != nil:
			u.logger.Info("session interrupted", zap.String("game uuid", gameUuid))
			return nil
		case err != nil:
			return errors.WithMessagef(err, "play round %d", round)
		}
		u.record(score)
		stats := u.Stats()
		u.logger.Info("round finished",
			zap.Int("round", round),
			zap.Int32("black wins", stats.BlackWins),
			zap.Int32("white wins", stats.WhiteWins),
			zap.Int32("draws", stats.Draws))
	}
	return nil
}

func (u *useCase) record(score domain.Score) {
	u.games.Inc()
	switch score.Winner() {
	case domain.Black:
		u.blackWins.Inc()
	case domain.White:
		u.whiteWins.Inc()
	default:
		u.draws.Inc()
	}
}

func (u *useCase) Stats() Stats {
	return Stats{
		Games:     u.games.Load(),
		BlackWins: u.blackWins.Load(),
		WhiteWins: u.whiteWins.Load(),
		Draws:     u.draws.Load(),
	}
}
