package jsonl

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/othello/internal/domain"
	"github.com/kiryu-dev/othello/pkg/utils"
	"github.com/pkg/errors"
)

// client speaks line-delimited JSON: one domain.Message per line in both
// directions. It lets an external GUI drive a player.
type client struct {
	uuid  string
	ctx   context.Context
	lines <-chan string
	enc   *jsoniter.Encoder
}

func New(ctx context.Context, in io.Reader, out io.Writer) *client {
	return &client{
		uuid:  uuid.NewString(),
		ctx:   ctx,
		lines: utils.ReadLines(ctx, in),
		enc:   jsoniter.NewEncoder(out),
	}
}

func (c *client) Uuid() string {
	return c.uuid
}

func (c *client) WriteMessage(msg domain.Message) error {
	if err := c.enc.Encode(msg); err != nil {
		return errors.WithMessage(err, "encode json line")
	}
	return nil
}

func (c *client) ReadMessage() (domain.Message, error) {
	for {
		var (
			line string
			ok   bool
		)
		select {
		case <-c.ctx.Done():
			return domain.Message{}, errors.WithMessage(domain.ErrConnectionClosed, c.ctx.Err().Error())
		case line, ok = <-c.lines:
		}
		if !ok {
			return domain.Message{}, errors.WithMessage(domain.ErrConnectionClosed, "end of input")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		var msg domain.Message
		if err := jsoniter.UnmarshalFromString(line, &msg); err != nil {
			return domain.Message{}, errors.WithMessage(err, "decode json line")
		}
		if msg.Payload == nil {
			return domain.Message{}, errors.WithMessagef(domain.ErrEmptyMessage, "'%s' without payload", msg.Type)
		}
		return msg, nil
	}
}
