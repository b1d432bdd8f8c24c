package opponent

import (
	"math/rand"

	"github.com/kiryu-dev/othello/internal/domain"
)

var corners = [...]domain.Position{
	{Row: 0, Col: 0},
	{Row: 0, Col: 7},
	{Row: 7, Col: 0},
	{Row: 7, Col: 7},
}

/* cells touching a corner, diagonally or orthogonally */
var xSquares = [...]domain.Position{
	{Row: 1, Col: 1}, {Row: 1, Col: 6}, {Row: 6, Col: 1}, {Row: 6, Col: 6},
	{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: 6}, {Row: 1, Col: 7},
	{Row: 6, Col: 0}, {Row: 7, Col: 1}, {Row: 6, Col: 7}, {Row: 7, Col: 6},
}

type useCase struct {
	rnd *rand.Rand
}

func New(rnd *rand.Rand) useCase {
	return useCase{
		rnd: rnd,
	}
}

func (u useCase) ChooseMove(board domain.LegalityChecker) (domain.Position, error) {
	var (
		legalMoves  []domain.Position
		cornerMoves []domain.Position
		safeMoves   []domain.Position
	)
	for row := 0; row < domain.BoardSize; row++ {
		for col := 0; col < domain.BoardSize; col++ {
			pos := domain.Position{Row: row, Col: col}
			if !board.IsLegalMove(pos) {
				continue
			}
			legalMoves = append(legalMoves, pos)
			switch {
			case IsCorner(pos):
				cornerMoves = append(cornerMoves, pos)
			case !IsXSquare(pos):
				safeMoves = append(safeMoves, pos)
			}
		}
	}
	switch {
	case len(cornerMoves) > 0:
		return cornerMoves[0], nil
	case len(safeMoves) > 0:
		return safeMoves[u.rnd.Intn(len(safeMoves))], nil
	case len(legalMoves) > 0:
		return legalMoves[u.rnd.Intn(len(legalMoves))], nil
	default:
		return domain.Position{}, ErrNoMoveAvailable
	}
}

func IsCorner(pos domain.Position) bool {
	return contains(corners[:], pos)
}

func IsXSquare(pos domain.Position) bool {
	return contains(xSquares[:], pos)
}

func contains(positions []domain.Position, pos domain.Position) bool {
	for _, p := range positions {
		if p == pos {
			return true
		}
	}
	return false
}
