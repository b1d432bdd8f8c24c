package game

import (
	"context"

	"github.com/kiryu-dev/othello/internal/domain"
	"github.com/kiryu-dev/othello/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const maxRejectedMoves = 5

const (
	WinGameResult      = "Victory"
	LoseGameResult     = "Defeat"
	DrawGameResult     = "Draw"
	WalkoverGameResult = "Walkover (the opponent left the game)"
)

type useCase struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) useCase {
	return useCase{
		logger: logger,
	}
}

func (u useCase) Play(ctx context.Context, board domain.Engine, black, white domain.Player) (domain.Score, error) {
	players := []domain.Player{black, white}
	logger := u.logger.With(zap.String("game uuid", black.GameUuid()))
	for _, player := range uniqueClients(players) {
		if err := startGame(player, board.State()); err != nil {
			return domain.Score{}, errors.WithMessage(err, "start game")
		}
	}
	logger.Info("game started")
	for !board.GameOver() {
		if err := ctx.Err(); err != nil {
			return board.Score(), errors.WithMessage(err, "game interrupted")
		}
		if !board.HasLegalMove() {
			passed := board.CurrentPlayer()
			board.AdvanceTurn()
			logger.Info("no legal moves, turn passes", zap.Stringer("player", passed))
			err := broadcast(players, domain.Message{
				Type:    domain.Pass,
				Payload: domain.PassPayload{Player: passed, State: board.State()},
			})
			if err != nil {
				return board.Score(), errors.WithMessage(err, "broadcast pass")
			}
			continue
		}
		mover, opponent := black, white
		if board.CurrentPlayer() == domain.White {
			mover, opponent = white, black
		}
		result, err := u.takeTurn(mover, board)
		switch {
		case errors.Is(err, domain.ErrConnectionClosed):
			logger.Info("player disconnected", zap.String("player uuid", mover.Uuid()),
				zap.Stringer("color", mover.Color()))
			if opponent.Uuid() != mover.Uuid() {
				err := opponent.SendMessage(domain.Message{
					Type:    domain.Walkover,
					Payload: domain.WalkoverPayload{GameResult: WalkoverGameResult},
				})
				if err != nil {
					logger.Warn("failed to notify opponent about walkover", zap.Error(err))
				}
			}
			return board.Score(), errors.WithMessagef(ErrPlayerLeft, "%s player", mover.Color())
		case err != nil:
			return board.Score(), errors.WithMessagef(err, "%s player's turn", mover.Color())
		}
		logger.Debug("move applied",
			zap.Stringer("player", result.Player),
			zap.Stringer("position", result.Position),
			zap.Int("flipped", len(result.Flipped)))
		err = broadcast(players, domain.Message{
			Type:    domain.MoveApplied,
			Payload: domain.MoveAppliedPayload{Result: result, State: board.State()},
		})
		if err != nil {
			return board.Score(), errors.WithMessage(err, "broadcast applied move")
		}
	}
	score := board.Score()
	logger.Info("game finished", zap.Int("white", score.White), zap.Int("black", score.Black),
		zap.Stringer("winner", score.Winner()))
	for _, player := range uniqueClients(players) {
		payload := domain.NewGameOverPayload(score, domain.WithGameResult(toGameResult(score, player.Color())))
		if err := player.SendMessage(domain.Message{Type: domain.GameOver, Payload: payload}); err != nil {
			return score, errors.WithMessage(err, "send game over message")
		}
	}
	return score, nil
}

func (u useCase) takeTurn(player domain.Player, board domain.Engine) (domain.MoveResult, error) {
	for rejected := 0; rejected < maxRejectedMoves; rejected++ {
		err := player.SendMessage(domain.Message{
			Type: domain.RequestMove,
			Payload: domain.RequestMovePayload{
				State:      board.State(),
				LegalMoves: board.LegalMoves(player.Color()),
			},
		})
		if err != nil {
			return domain.MoveResult{}, errors.WithMessage(err, "send message to player")
		}
		move, err := receiveMoveMessage(player)
		if err != nil {
			return domain.MoveResult{}, errors.WithMessage(err, "receive move message")
		}
		result, err := board.ApplyMove(move.Position)
		switch {
		case errors.Is(err, domain.ErrIllegalMove), errors.Is(err, domain.ErrOutOfBounds):
			u.logger.Warn("move rejected", zap.String("player uuid", player.Uuid()), zap.Error(err))
			sendErr := player.SendMessage(domain.Message{
				Type:    domain.IllegalMove,
				Payload: domain.IllegalMovePayload{Position: move.Position, Reason: err.Error()},
			})
			if sendErr != nil {
				return domain.MoveResult{}, errors.WithMessage(sendErr, "send message to player")
			}
		case err != nil:
			return domain.MoveResult{}, errors.WithMessage(err, "apply move")
		default:
			return result, nil
		}
	}
	return domain.MoveResult{}, errTooManyRejectedMoves
}

func startGame(player domain.Player, state domain.GameState) error {
	err := player.SendMessage(domain.Message{
		Type: domain.StartGame,
		Payload: domain.StartGamePayload{
			Color: player.Color(),
			State: state,
		},
	})
	if err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

func receiveMoveMessage(player domain.Player) (domain.PlayerMovePayload, error) {
	msg, err := player.ReceiveMessage()
	if err != nil {
		return domain.PlayerMovePayload{}, errors.WithMessage(err, "read message from player")
	}
	if msg.Type != domain.PlayerMove {
		return domain.PlayerMovePayload{}, errors.WithMessagef(errUnexpectedMessageType, "'%s'", msg.Type)
	}
	move, err := utils.UnmarshalJson[domain.PlayerMovePayload](msg.Payload)
	if err != nil {
		return domain.PlayerMovePayload{}, errors.WithMessage(err, "unmarshal player's move")
	}
	return move, nil
}

/* hot-seat games share one client between both colours, it gets each broadcast once */
func uniqueClients(players []domain.Player) []domain.Player {
	unique := make([]domain.Player, 0, len(players))
	seen := make(map[string]struct{}, len(players))
	for _, player := range players {
		if _, ok := seen[player.Uuid()]; ok {
			continue
		}
		seen[player.Uuid()] = struct{}{}
		unique = append(unique, player)
	}
	return unique
}

func broadcast(players []domain.Player, msg domain.Message) error {
	for _, player := range uniqueClients(players) {
		if err := player.SendMessage(msg); err != nil {
			return errors.WithMessagef(err, "send message to %s player", player.Color())
		}
	}
	return nil
}

func toGameResult(score domain.Score, color domain.Cell) string {
	switch score.Winner() {
	case domain.Empty:
		return DrawGameResult
	case color:
		return WinGameResult
	default:
		return LoseGameResult
	}
}
