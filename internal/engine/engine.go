// Package engine implements the Othello rules on a fixed 8x8 board.
//
// The Engine is a plain state machine with no I/O and no locking. It is owned
// by exactly one caller at a time.
package engine

import (
	"fmt"

	"github.com/kiryu-dev/othello/internal/domain"
	"github.com/pkg/errors"
)

// FirstPlayer is the colour to move from the initial position.
const FirstPlayer = domain.Black

// Engine holds the board, the side to move and the number of moves played.
type Engine struct {
	board     domain.Board
	current   domain.Cell
	moveCount int
}

// New returns an engine set up at the initial position.
func New() *Engine {
	e := &Engine{}
	e.Reset()
	return e
}

// FromState builds an engine from an arbitrary position. The status field of
// the state is ignored and recomputed from the board.
func FromState(state domain.GameState) (*Engine, error) {
	if !state.CurrentPlayer.IsColor() {
		return nil, errors.WithMessagef(ErrInvalidState, "current player '%s'", state.CurrentPlayer)
	}
	if state.MoveCount < 0 {
		return nil, errors.WithMessagef(ErrInvalidState, "negative move count %d", state.MoveCount)
	}
	for row := range state.Board {
		for col, cell := range state.Board[row] {
			if cell != domain.Empty && !cell.IsColor() {
				return nil, errors.WithMessagef(ErrInvalidState, "cell %v holds '%s'",
					domain.Position{Row: row, Col: col}, cell)
			}
		}
	}
	return &Engine{
		board:     state.Board,
		current:   state.CurrentPlayer,
		moveCount: state.MoveCount,
	}, nil
}

// Reset restores the four-disc starting position with FirstPlayer to move.
func (e *Engine) Reset() {
	e.board = domain.Board{}
	mid := domain.BoardSize / 2
	e.board[mid-1][mid-1], e.board[mid][mid] = domain.White, domain.White
	e.board[mid-1][mid], e.board[mid][mid-1] = domain.Black, domain.Black
	e.current = FirstPlayer
	e.moveCount = 0
}

func (e *Engine) CurrentPlayer() domain.Cell {
	return e.current
}

// CellColor returns the content of a cell. Asking for a cell off the board is
// a programming error and panics.
func (e *Engine) CellColor(pos domain.Position) domain.Cell {
	if !pos.Valid() {
		panic(fmt.Sprintf("engine: cell %v is off the board", pos))
	}
	return e.board.At(pos)
}

func (e *Engine) MoveCount() int {
	return e.moveCount
}

// IsLegalMove reports whether the side to move may place a disc at pos.
func (e *Engine) IsLegalMove(pos domain.Position) bool {
	return e.isLegalFor(pos, e.current)
}

// CapturesInDirection reports whether a disc of the side to move placed at
// pos would capture along dir.
func (e *Engine) CapturesInDirection(pos domain.Position, dir Direction) bool {
	return e.captureRun(pos, dir, e.current) > 0
}

// ApplyMove places a disc for the side to move, flips every captured run and
// passes the turn. A rejected move leaves the engine untouched.
func (e *Engine) ApplyMove(pos domain.Position) (domain.MoveResult, error) {
	if !pos.Valid() {
		return domain.MoveResult{}, errors.WithMessagef(domain.ErrOutOfBounds, "move %v", pos)
	}
	player := e.current
	var runs [len(Directions)]int
	total := 0
	if e.board.At(pos) == domain.Empty {
		for _, dir := range Directions {
			runs[dir] = e.captureRun(pos, dir, player)
			total += runs[dir]
		}
	}
	if total == 0 {
		return domain.MoveResult{}, errors.WithMessagef(domain.ErrIllegalMove, "%s at %v", player, pos)
	}

	e.board.Set(pos, player)
	flipped := make([]domain.Position, 0, total)
	for _, dir := range Directions {
		cur := pos
		for i := 0; i < runs[dir]; i++ {
			cur = dir.step(cur)
			e.board.Set(cur, player)
			flipped = append(flipped, cur)
		}
	}
	e.moveCount++
	e.current = player.Opponent()
	return domain.MoveResult{
		Player:   player,
		Position: pos,
		Flipped:  flipped,
	}, nil
}

// AnyLegalMove reports whether player has at least one legal move. It does
// not change the side to move.
func (e *Engine) AnyLegalMove(player domain.Cell) bool {
	for row := 0; row < domain.BoardSize; row++ {
		for col := 0; col < domain.BoardSize; col++ {
			if e.isLegalFor(domain.Position{Row: row, Col: col}, player) {
				return true
			}
		}
	}
	return false
}

func (e *Engine) HasLegalMove() bool {
	return e.AnyLegalMove(e.current)
}

// AdvanceTurn hands the move to the opponent without placing a disc. The
// controller calls it when the side to move has to pass.
func (e *Engine) AdvanceTurn() {
	e.current = e.current.Opponent()
}

// GameOver reports whether neither colour can move.
func (e *Engine) GameOver() bool {
	return !e.AnyLegalMove(domain.Black) && !e.AnyLegalMove(domain.White)
}

func (e *Engine) Status() domain.Status {
	if e.GameOver() {
		return domain.Terminal
	}
	return domain.InProgress
}

func (e *Engine) Score() domain.Score {
	return domain.Score{
		White: e.board.Count(domain.White),
		Black: e.board.Count(domain.Black),
	}
}

// LegalMoves lists the legal moves of player in row-major order.
func (e *Engine) LegalMoves(player domain.Cell) []domain.Position {
	var moves []domain.Position
	for row := 0; row < domain.BoardSize; row++ {
		for col := 0; col < domain.BoardSize; col++ {
			pos := domain.Position{Row: row, Col: col}
			if e.isLegalFor(pos, player) {
				moves = append(moves, pos)
			}
		}
	}
	return moves
}

func (e *Engine) State() domain.GameState {
	return domain.GameState{
		Board:         e.board,
		CurrentPlayer: e.current,
		Status:        e.Status(),
		MoveCount:     e.moveCount,
	}
}

func (e *Engine) isLegalFor(pos domain.Position, player domain.Cell) bool {
	if !pos.Valid() || e.board.At(pos) != domain.Empty {
		return false
	}
	for _, dir := range Directions {
		if e.captureRun(pos, dir, player) > 0 {
			return true
		}
	}
	return false
}

// captureRun walks from pos along dir and returns how many opponent discs are
// bracketed by a disc of player. Zero means the line does not capture: it is
// empty next to pos, starts with an own disc, or runs into an empty cell or
// the edge before reaching one.
func (e *Engine) captureRun(pos domain.Position, dir Direction, player domain.Cell) int {
	opponent := player.Opponent()
	n := 0
	for cur := dir.step(pos); cur.Valid(); cur = dir.step(cur) {
		switch e.board.At(cur) {
		case opponent:
			n++
		case player:
			return n
		default:
			return 0
		}
	}
	return 0
}
