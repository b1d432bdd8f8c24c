package engine

import (
	"github.com/kiryu-dev/othello/internal/domain"
)

// Direction is one of the eight compass directions a capture line can run in.
type Direction byte

const (
	North = Direction(iota)
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Directions lists every direction in clockwise order starting from North.
var Directions = [...]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var vectors = [...]struct {
	dRow, dCol int
	name       string
}{
	North:     {-1, 0, "N"},
	NorthEast: {-1, 1, "NE"},
	East:      {0, 1, "E"},
	SouthEast: {1, 1, "SE"},
	South:     {1, 0, "S"},
	SouthWest: {1, -1, "SW"},
	West:      {0, -1, "W"},
	NorthWest: {-1, -1, "NW"},
}

// Delta returns the row and column offsets of a single step.
func (d Direction) Delta() (dRow, dCol int) {
	v := vectors[d]
	return v.dRow, v.dCol
}

func (d Direction) String() string {
	return vectors[d].name
}

func (d Direction) step(pos domain.Position) domain.Position {
	v := vectors[d]
	return domain.Position{Row: pos.Row + v.dRow, Col: pos.Col + v.dCol}
}
