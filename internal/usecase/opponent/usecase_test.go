package opponent

import (
	"math/rand"
	"testing"

	"github.com/kiryu-dev/othello/internal/domain"
	"github.com/kiryu-dev/othello/internal/engine"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type legalSet map[domain.Position]bool

func (s legalSet) IsLegalMove(pos domain.Position) bool {
	return s[pos]
}

func newLegalSet(positions ...domain.Position) legalSet {
	s := make(legalSet, len(positions))
	for _, p := range positions {
		s[p] = true
	}
	return s
}

func pos(row, col int) domain.Position {
	return domain.Position{Row: row, Col: col}
}

func TestChooseMovePrefersFirstCorner(t *testing.T) {
	board := newLegalSet(pos(2, 3), pos(7, 7), pos(0, 7), pos(1, 1), pos(4, 4))
	for seed := int64(0); seed < 50; seed++ {
		move, err := New(rand.New(rand.NewSource(seed))).ChooseMove(board)
		require.NoError(t, err)
		assert.Equal(t, pos(0, 7), move, "seed %d", seed)
	}
}

func TestChooseMoveAvoidsXSquares(t *testing.T) {
	safe := []domain.Position{pos(2, 3), pos(5, 4)}
	board := newLegalSet(append([]domain.Position{pos(1, 1), pos(0, 1), pos(6, 7)}, safe...)...)
	picked := make(map[domain.Position]int)
	for seed := int64(0); seed < 200; seed++ {
		move, err := New(rand.New(rand.NewSource(seed))).ChooseMove(board)
		require.NoError(t, err)
		picked[move]++
	}
	assert.Len(t, picked, len(safe))
	for _, p := range safe {
		assert.Positive(t, picked[p], "%v never picked", p)
	}
}

func TestChooseMoveFallsBackToXSquares(t *testing.T) {
	board := newLegalSet(pos(1, 1), pos(7, 6))
	picked := make(map[domain.Position]int)
	for seed := int64(0); seed < 200; seed++ {
		move, err := New(rand.New(rand.NewSource(seed))).ChooseMove(board)
		require.NoError(t, err)
		picked[move]++
	}
	assert.Len(t, picked, 2)
}

func TestChooseMoveNoMoveAvailable(t *testing.T) {
	_, err := New(rand.New(rand.NewSource(1))).ChooseMove(newLegalSet())
	assert.True(t, errors.Is(err, ErrNoMoveAvailable))
}

func TestChooseMoveIsLegalForEngine(t *testing.T) {
	u := New(rand.New(rand.NewSource(42)))
	e := engine.New()
	for !e.GameOver() {
		if !e.HasLegalMove() {
			e.AdvanceTurn()
			continue
		}
		move, err := u.ChooseMove(e)
		require.NoError(t, err)
		require.True(t, e.IsLegalMove(move))
		_, err = e.ApplyMove(move)
		require.NoError(t, err)
	}
}

func TestSquareClassification(t *testing.T) {
	corners, xs := 0, 0
	for row := 0; row < domain.BoardSize; row++ {
		for col := 0; col < domain.BoardSize; col++ {
			p := pos(row, col)
			if IsCorner(p) {
				corners++
			}
			if IsXSquare(p) {
				xs++
				assert.False(t, IsCorner(p))
			}
		}
	}
	assert.Equal(t, 4, corners)
	assert.Equal(t, 12, xs)
}
