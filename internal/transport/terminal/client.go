package terminal

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/kiryu-dev/othello/internal/domain"
	"github.com/kiryu-dev/othello/pkg/utils"
	"github.com/pkg/errors"
)

var errInvalidInput = errors.New("expected a move like 'd3' or 'row col'")

const (
	blackSymbol = '●'
	whiteSymbol = '○'
	emptySymbol = '.'
	hintSymbol  = '*'
)

type client struct {
	uuid        string
	ctx         context.Context
	lines       <-chan string
	out         io.Writer
	showHints   bool
	clearScreen bool
	state       domain.GameState
	hints       []domain.Position
	notices     []string
}

type Option func(c *client)

func WithHints(show bool) Option {
	return func(c *client) {
		c.showHints = show
	}
}

func WithoutScreenClear() Option {
	return func(c *client) {
		c.clearScreen = false
	}
}

// New returns a client that renders the game on out and reads moves from in.
// Reading stops when ctx is done.
func New(ctx context.Context, in io.Reader, out io.Writer, opts ...Option) *client {
	c := &client{
		uuid:        uuid.NewString(),
		ctx:         ctx,
		lines:       utils.ReadLines(ctx, in),
		out:         out,
		showHints:   true,
		clearScreen: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) Uuid() string {
	return c.uuid
}

func (c *client) WriteMessage(msg domain.Message) error {
	switch msg.Type {
	case domain.StartGame:
		v, err := utils.UnmarshalJson[domain.StartGamePayload](msg.Payload)
		if err != nil {
			return errors.WithMessage(err, "unmarshal json to 'StartGamePayload' type")
		}
		c.state = v.State
		c.hints = nil
		c.render()
	case domain.RequestMove:
		v, err := utils.UnmarshalJson[domain.RequestMovePayload](msg.Payload)
		if err != nil {
			return errors.WithMessage(err, "unmarshal json to 'RequestMovePayload' type")
		}
		c.state = v.State
		c.hints = v.LegalMoves
		c.render()
		fmt.Fprintf(c.out, "%s to move: ", colorName(c.state.CurrentPlayer))
	case domain.IllegalMove:
		v, err := utils.UnmarshalJson[domain.IllegalMovePayload](msg.Payload)
		if err != nil {
			return errors.WithMessage(err, "unmarshal json to 'IllegalMovePayload' type")
		}
		c.notices = append(c.notices, fmt.Sprintf("Illegal move %s (%s)", v.Position, v.Reason))
	case domain.MoveApplied:
		v, err := utils.UnmarshalJson[domain.MoveAppliedPayload](msg.Payload)
		if err != nil {
			return errors.WithMessage(err, "unmarshal json to 'MoveAppliedPayload' type")
		}
		c.state = v.State
		c.hints = nil
		c.notices = append(c.notices, fmt.Sprintf("%s played %s, flipped %d",
			colorName(v.Result.Player), v.Result.Position, len(v.Result.Flipped)))
	case domain.Pass:
		v, err := utils.UnmarshalJson[domain.PassPayload](msg.Payload)
		if err != nil {
			return errors.WithMessage(err, "unmarshal json to 'PassPayload' type")
		}
		c.state = v.State
		c.notices = append(c.notices, fmt.Sprintf("%s has no legal moves and passes", colorName(v.Player)))
	case domain.GameOver:
		v, err := utils.UnmarshalJson[domain.GameOverPayload](msg.Payload)
		if err != nil {
			return errors.WithMessage(err, "unmarshal json to 'GameOverPayload' type")
		}
		c.hints = nil
		c.render()
		if v.Winner == domain.Empty {
			fmt.Fprintf(c.out, "It's a tie! Black %d, White %d\n", v.Score.Black, v.Score.White)
		} else {
			fmt.Fprintf(c.out, "%s wins! Black %d, White %d\n", colorName(v.Winner), v.Score.Black, v.Score.White)
		}
	case domain.Walkover:
		v, err := utils.UnmarshalJson[domain.WalkoverPayload](msg.Payload)
		if err != nil {
			return errors.WithMessage(err, "unmarshal json to 'WalkoverPayload' type")
		}
		fmt.Fprintln(c.out, v.GameResult)
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
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" {
			return domain.Message{}, errors.WithMessage(domain.ErrConnectionClosed, "player quit")
		}
		pos, err := parseMove(line)
		if err != nil {
			fmt.Fprintf(c.out, "%v, try again: ", err)
			continue
		}
		return domain.Message{
			Type:    domain.PlayerMove,
			Payload: domain.PlayerMovePayload{Position: pos},
		}, nil
	}
}

// parseMove accepts algebraic notation ("d3") or zero-based "row col".
func parseMove(s string) (domain.Position, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		pos, err := domain.ParsePosition(fields[0])
		if err != nil {
			return domain.Position{}, errors.WithMessage(errInvalidInput, err.Error())
		}
		return pos, nil
	case 2:
		row, err := strconv.Atoi(fields[0])
		if err != nil {
			return domain.Position{}, errors.WithMessagef(errInvalidInput, "row '%s'", fields[0])
		}
		col, err := strconv.Atoi(fields[1])
		if err != nil {
			return domain.Position{}, errors.WithMessagef(errInvalidInput, "column '%s'", fields[1])
		}
		return domain.Position{Row: row, Col: col}, nil
	default:
		return domain.Position{}, errInvalidInput
	}
}

func (c *client) render() {
	var sb strings.Builder
	if c.clearScreen {
		sb.WriteString("\033[H\033[J")
	}
	hints := make(map[domain.Position]bool, len(c.hints))
	if c.showHints {
		for _, p := range c.hints {
			hints[p] = true
		}
	}
	fmt.Fprintf(&sb, "Black %d  White %d  move %d\n\n",
		c.state.Board.Count(domain.Black), c.state.Board.Count(domain.White), c.state.MoveCount)
	sb.WriteString("  a b c d e f g h\n")
	for row := 0; row < domain.BoardSize; row++ {
		fmt.Fprintf(&sb, "%d", row+1)
		for col := 0; col < domain.BoardSize; col++ {
			pos := domain.Position{Row: row, Col: col}
			sb.WriteByte(' ')
			sb.WriteRune(symbol(c.state.Board.At(pos), hints[pos]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	for _, notice := range c.notices {
		sb.WriteString(notice)
		sb.WriteByte('\n')
	}
	c.notices = c.notices[:0]
	fmt.Fprint(c.out, sb.String())
}

func symbol(cell domain.Cell, hint bool) rune {
	switch {
	case cell == domain.Black:
		return blackSymbol
	case cell == domain.White:
		return whiteSymbol
	case hint:
		return hintSymbol
	default:
		return emptySymbol
	}
}

func colorName(c domain.Cell) string {
	switch c {
	case domain.Black:
		return "Black"
	case domain.White:
		return "White"
	default:
		return "Nobody"
	}
}
