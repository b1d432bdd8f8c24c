package opponent

import (
	"github.com/pkg/errors"
)

var ErrNoMoveAvailable = errors.New("no move available")
