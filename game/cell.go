package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidCell = errors.New("invalid coordinate")

// Cell is a coordinate on a board, 0-indexed
type Cell struct {
	Row, Col int
}

var sideOffsets = [4][2]int{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

var neighborOffsets = [8][2]int{
	{-1, -1},
	{-1, 0},
	{-1, 1},
	{0, -1},
	{0, 1},
	{1, -1},
	{1, 0},
	{1, 1},
}

// String returns the wire form of the cell, a column letter followed by a
// 1-based row number, e.g. C7
func (cell Cell) String() string {
	return fmt.Sprintf("%c%d", 'A'+cell.Col, cell.Row+1)
}

func (cell Cell) InBounds() bool {
	return cell.Row >= 0 && cell.Row < GridSize && cell.Col >= 0 && cell.Col < GridSize
}

// SideNeighbors returns the in-bounds cells sharing an edge with this one
func (cell Cell) SideNeighbors() []Cell {
	return cell.offsetCells(sideOffsets[:])
}

// Neighbors returns all in-bounds cells surrounding this one, diagonals included
func (cell Cell) Neighbors() []Cell {
	return cell.offsetCells(neighborOffsets[:])
}

func (cell Cell) offsetCells(offsets [][2]int) []Cell {
	cells := make([]Cell, 0, len(offsets))
	for _, offset := range offsets {
		neighbor := Cell{Row: cell.Row + offset[0], Col: cell.Col + offset[1]}
		if neighbor.InBounds() {
			cells = append(cells, neighbor)
		}
	}
	return cells
}

// AllCells returns every cell of the grid, row by row
func AllCells() []Cell {
	cells := make([]Cell, 0, GridSize*GridSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}
	return cells
}

// ParseCell parses a coordinate such as "C7" or " j10 "
func ParseCell(in string) (Cell, error) {
	s := strings.ToUpper(strings.TrimSpace(in))
	if len(s) < 2 || len(s) > 3 {
		return Cell{}, errors.Wrapf(ErrInvalidCell, "%q", in)
	}

	col := int(s[0]) - 'A'
	row, err := strconv.Atoi(s[1:])
	if err != nil || s[1] < '0' || s[1] > '9' {
		return Cell{}, errors.Wrapf(ErrInvalidCell, "%q", in)
	}

	cell := Cell{Row: row - 1, Col: col}
	if !cell.InBounds() {
		return Cell{}, errors.Wrapf(ErrInvalidCell, "%q is outside the board", in)
	}
	return cell, nil
}
