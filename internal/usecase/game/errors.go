package game

import (
	"github.com/pkg/errors"
)

var (
	ErrPlayerLeft = errors.New("player left the game")

	errUnexpectedMessageType = errors.New("unexpected message type")
	errTooManyRejectedMoves  = errors.New("too many rejected moves")
)
