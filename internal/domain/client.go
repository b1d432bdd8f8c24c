package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrConnectionClosed   = errors.New("connection closed")
	ErrEmptyMessage       = errors.New("empty message")
	ErrUnknownMessageType = errors.New("unknown message type")
)

type messageType byte

const (
	StartGame = messageType(iota)
	RequestMove
	PlayerMove
	IllegalMove
	MoveApplied
	Pass
	GameOver
	Walkover
)

var messageTypeNames = [...]string{
	StartGame:   "start_game",
	RequestMove: "request_move",
	PlayerMove:  "player_move",
	IllegalMove: "illegal_move",
	MoveApplied: "move_applied",
	Pass:        "pass",
	GameOver:    "game_over",
	Walkover:    "walkover",
}

func (t messageType) String() string {
	if int(t) < len(messageTypeNames) {
		return messageTypeNames[t]
	}
	return "unknown"
}

func (t messageType) MarshalText() ([]byte, error) {
	if int(t) >= len(messageTypeNames) {
		return nil, errors.WithMessagef(ErrUnknownMessageType, "value %d", byte(t))
	}
	return []byte(messageTypeNames[t]), nil
}

func (t *messageType) UnmarshalText(text []byte) error {
	for i, name := range messageTypeNames {
		if name == string(text) {
			*t = messageType(i)
			return nil
		}
	}
	return errors.WithMessagef(ErrUnknownMessageType, "'%s'", text)
}

type Message struct {
	Type    messageType `json:"type"`
	Payload any         `json:"payload,omitempty"`
}

type StartGamePayload struct {
	Color Cell      `json:"color"`
	State GameState `json:"state"`
}

type RequestMovePayload struct {
	State      GameState  `json:"state"`
	LegalMoves []Position `json:"legal_moves"`
}

type PlayerMovePayload struct {
	Position Position `json:"position"`
}

type IllegalMovePayload struct {
	Position Position `json:"position"`
	Reason   string   `json:"reason"`
}

type MoveAppliedPayload struct {
	Result MoveResult `json:"result"`
	State  GameState  `json:"state"`
}

type PassPayload struct {
	Player Cell      `json:"player"`
	State  GameState `json:"state"`
}

type GameOverPayload struct {
	Score      Score  `json:"score"`
	Winner     Cell   `json:"winner"`
	GameResult string `json:"game_result"`
}

type WalkoverPayload struct {
	GameResult string `json:"game_result"`
}

type GameOverPayloadOption func(p *GameOverPayload)

func WithGameResult(gameResultMsg string) GameOverPayloadOption {
	return func(p *GameOverPayload) {
		p.GameResult = gameResultMsg
	}
}

func NewGameOverPayload(score Score, opts ...GameOverPayloadOption) GameOverPayload {
	payload := GameOverPayload{
		Score:  score,
		Winner: score.Winner(),
	}
	for _, opt := range opts {
		opt(&payload)
	}
	return payload
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
}
