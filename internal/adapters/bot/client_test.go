package bot

import (
	"math/rand"
	"testing"

	"github.com/kiryu-dev/othello/internal/domain"
	"github.com/kiryu-dev/othello/internal/engine"
	"github.com/kiryu-dev/othello/internal/usecase/opponent"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBot(seed int64) *client {
	return New(opponent.New(rand.New(rand.NewSource(seed))), zap.NewNop())
}

func TestBotAnswersMoveRequest(t *testing.T) {
	e := engine.New()
	c := newBot(7)

	err := c.WriteMessage(domain.Message{
		Type:    domain.RequestMove,
		Payload: domain.RequestMovePayload{State: e.State(), LegalMoves: e.LegalMoves(e.CurrentPlayer())},
	})
	require.NoError(t, err)

	msg, err := c.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, domain.PlayerMove, msg.Type)
	move, ok := msg.Payload.(domain.PlayerMovePayload)
	require.True(t, ok)
	assert.True(t, e.IsLegalMove(move.Position))

	_, err = c.ReadMessage()
	assert.True(t, errors.Is(err, errNoPendingMove))
}

func TestBotTakesCorner(t *testing.T) {
	var board domain.Board
	board[0][1] = domain.White
	board[0][2] = domain.Black
	board[4][4] = domain.White
	board[5][5] = domain.Black
	state := domain.GameState{Board: board, CurrentPlayer: domain.Black}

	for seed := int64(0); seed < 10; seed++ {
		c := newBot(seed)
		require.NoError(t, c.WriteMessage(domain.Message{
			Type:    domain.RequestMove,
			Payload: &domain.RequestMovePayload{State: state},
		}))
		msg, err := c.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, domain.PlayerMovePayload{Position: domain.Position{Row: 0, Col: 0}}, msg.Payload)
	}
}

func TestBotDecodesWirePayload(t *testing.T) {
	e := engine.New()
	wire := map[string]any{
		"state": map[string]any{
			"board":          e.State().Board,
			"current_player": "black",
			"status":         "in_progress",
			"move_count":     0,
		},
	}
	c := newBot(1)

	require.NoError(t, c.WriteMessage(domain.Message{Type: domain.RequestMove, Payload: wire}))

	msg, err := c.ReadMessage()
	require.NoError(t, err)
	move := msg.Payload.(domain.PlayerMovePayload)
	assert.Contains(t, e.LegalMoves(domain.Black), move.Position)
}

func TestBotIgnoresOtherMessages(t *testing.T) {
	c := newBot(1)
	for _, msg := range []domain.Message{
		{Type: domain.StartGame, Payload: domain.StartGamePayload{Color: domain.White}},
		{Type: domain.Pass, Payload: domain.PassPayload{Player: domain.Black}},
		{Type: domain.GameOver, Payload: domain.NewGameOverPayload(domain.Score{White: 40, Black: 24})},
	} {
		require.NoError(t, c.WriteMessage(msg))
	}
	_, err := c.ReadMessage()
	assert.Error(t, err)
}

func TestBotRejectsBrokenState(t *testing.T) {
	c := newBot(1)
	err := c.WriteMessage(domain.Message{
		Type:    domain.RequestMove,
		Payload: domain.RequestMovePayload{State: domain.GameState{CurrentPlayer: domain.Empty}},
	})
	assert.True(t, errors.Is(err, engine.ErrInvalidState))
}

func TestBotWithoutLegalMove(t *testing.T) {
	c := newBot(1)
	err := c.WriteMessage(domain.Message{
		Type:    domain.RequestMove,
		Payload: domain.RequestMovePayload{State: domain.GameState{CurrentPlayer: domain.White}},
	})
	assert.True(t, errors.Is(err, opponent.ErrNoMoveAvailable))
}
