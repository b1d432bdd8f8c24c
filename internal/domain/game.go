package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const BoardSize = 8

var (
	ErrOutOfBounds     = errors.New("position is off the board")
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidPosition = errors.New("invalid position notation")
	ErrInvalidCell     = errors.New("invalid cell value")
)

type Cell byte

const (
	Empty = Cell(iota)
	Black
	White
)

var cellNames = [...]string{
	Empty: "empty",
	Black: "black",
	White: "white",
}

func (c Cell) IsColor() bool {
	return c == Black || c == White
}

// Opponent returns the other colour. Empty has no opponent and maps to itself.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Cell) String() string {
	if int(c) < len(cellNames) {
		return cellNames[c]
	}
	return fmt.Sprintf("cell(%d)", byte(c))
}

func (c Cell) MarshalText() ([]byte, error) {
	if int(c) >= len(cellNames) {
		return nil, errors.WithMessagef(ErrInvalidCell, "value %d", byte(c))
	}
	return []byte(cellNames[c]), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	for i, name := range cellNames {
		if name == string(text) {
			*c = Cell(i)
			return nil
		}
	}
	return errors.WithMessagef(ErrInvalidCell, "'%s'", text)
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// String renders the position in algebraic notation: column letter, then row
// number counted from 1. Position{Row: 2, Col: 3} is "d3".
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}

func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Position{}, errors.WithMessagef(ErrInvalidPosition, "'%s'", s)
	}
	pos := Position{
		Row: int(s[1]) - '1',
		Col: int(s[0]) - 'a',
	}
	if !pos.Valid() {
		return Position{}, errors.WithMessagef(ErrInvalidPosition, "'%s'", s)
	}
	return pos, nil
}

type Board [BoardSize][BoardSize]Cell

func (b *Board) At(pos Position) Cell {
	return b[pos.Row][pos.Col]
}

func (b *Board) Set(pos Position, c Cell) {
	b[pos.Row][pos.Col] = c
}

func (b *Board) Count(c Cell) int {
	count := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == c {
				count++
			}
		}
	}
	return count
}

type Score struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// Winner returns the colour with more discs, or Empty on a tie.
func (s Score) Winner() Cell {
	switch {
	case s.White > s.Black:
		return White
	case s.Black > s.White:
		return Black
	default:
		return Empty
	}
}

func (s Score) Total() int {
	return s.White + s.Black
}

type Status byte

const (
	InProgress = Status(iota)
	Terminal
)

func (s Status) String() string {
	if s == Terminal {
		return "terminal"
	}
	return "in_progress"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*s = InProgress
	case "terminal":
		*s = Terminal
	default:
		return errors.Errorf("unknown status '%s'", text)
	}
	return nil
}

type GameState struct {
	Board         Board  `json:"board"`
	CurrentPlayer Cell   `json:"current_player"`
	Status        Status `json:"status"`
	MoveCount     int    `json:"move_count"`
}

type MoveResult struct {
	Player   Cell       `json:"player"`
	Position Position   `json:"position"`
	Flipped  []Position `json:"flipped"`
}

type LegalityChecker interface {
	IsLegalMove(pos Position) bool
}

type Engine interface {
	LegalityChecker
	ApplyMove(pos Position) (MoveResult, error)
	AdvanceTurn()
	AnyLegalMove(player Cell) bool
	HasLegalMove() bool
	GameOver() bool
	CurrentPlayer() Cell
	LegalMoves(player Cell) []Position
	Score() Score
	State() GameState
	Reset()
}

type MoveChooser interface {
	ChooseMove(board LegalityChecker) (Position, error)
}

type GameUseCase interface {
	Play(ctx context.Context, board Engine, black, white Player) (Score, error)
}
