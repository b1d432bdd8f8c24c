package engine

import (
	"github.com/pkg/errors"
)

var ErrInvalidState = errors.New("invalid game state")
