package bot

import (
	"github.com/google/uuid"
	"github.com/kiryu-dev/othello/internal/domain"
	"github.com/kiryu-dev/othello/internal/engine"
	"github.com/kiryu-dev/othello/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var errNoPendingMove = errors.New("no move was requested")

// client is an in-process player. It answers every move request with the
// opponent policy and hands the answer back on the next read.
type client struct {
	uuid    string
	policy  domain.MoveChooser
	pending []domain.Message
	logger  *zap.Logger
}

func New(policy domain.MoveChooser, logger *zap.Logger) *client {
	c := &client{
		uuid:   uuid.NewString(),
		policy: policy,
	}
	c.logger = logger.With(zap.String("bot uuid", c.uuid))
	return c
}

func (c *client) WriteMessage(msg domain.Message) error {
	if msg.Type != domain.RequestMove {
		return nil
	}
	req, err := utils.UnmarshalJson[domain.RequestMovePayload](msg.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'RequestMovePayload' type")
	}
	board, err := engine.FromState(req.State)
	if err != nil {
		return errors.WithMessage(err, "restore board")
	}
	pos, err := c.policy.ChooseMove(board)
	if err != nil {
		return errors.WithMessagef(err, "choose move for %s", req.State.CurrentPlayer)
	}
	c.logger.Debug("bot chose move", zap.Stringer("position", pos),
		zap.Stringer("color", req.State.CurrentPlayer))
	c.pending = append(c.pending, domain.Message{
		Type:    domain.PlayerMove,
		Payload: domain.PlayerMovePayload{Position: pos},
	})
	return nil
}

func (c *client) ReadMessage() (domain.Message, error) {
	if len(c.pending) == 0 {
		return domain.Message{}, errNoPendingMove
	}
	msg := c.pending[0]
	c.pending = c.pending[1:]
	return msg, nil
}

func (c *client) Uuid() string {
	return c.uuid
}
