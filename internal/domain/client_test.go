package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageTypeText(t *testing.T) {
	for i := range messageTypeNames {
		mt := messageType(i)
		text, err := mt.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, mt.String(), string(text))

		var decoded messageType
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, mt, decoded)
	}

	_, err := messageType(200).MarshalText()
	assert.True(t, errors.Is(err, ErrUnknownMessageType))
	assert.Equal(t, "unknown", messageType(200).String())
	var mt messageType
	assert.True(t, errors.Is(mt.UnmarshalText([]byte("resign")), ErrUnknownMessageType))
}

func TestNewGameOverPayload(t *testing.T) {
	payload := NewGameOverPayload(Score{White: 40, Black: 24})
	assert.Equal(t, White, payload.Winner)
	assert.Empty(t, payload.GameResult)

	payload = NewGameOverPayload(Score{White: 32, Black: 32}, WithGameResult("Draw"))
	assert.Equal(t, Empty, payload.Winner)
	assert.Equal(t, "Draw", payload.GameResult)
}

type stubClient struct {
	written []Message
}

func (c *stubClient) WriteMessage(msg Message) error {
	c.written = append(c.written, msg)
	return nil
}

func (c *stubClient) ReadMessage() (Message, error) {
	return Message{Type: Pass}, nil
}

func (c *stubClient) Uuid() string {
	return "client-uuid"
}

func TestPlayerDelegatesToClient(t *testing.T) {
	cli := new(stubClient)
	p := NewPlayer("game-uuid", cli, Black)

	assert.Equal(t, "client-uuid", p.Uuid())
	assert.Equal(t, "game-uuid", p.GameUuid())
	assert.Equal(t, Black, p.Color())
	require.NoError(t, p.SendMessage(Message{Type: StartGame}))
	assert.Equal(t, []Message{{Type: StartGame}}, cli.written)
	msg, err := p.ReceiveMessage()
	require.NoError(t, err)
	assert.Equal(t, Pass, msg.Type)
}
