package game

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/they4kman/broadside/util/collections"
)

// Ship is one 4-connected group of ship cells on a board
type Ship struct {
	cells     []Cell
	remaining collections.Set[Cell]
}

func newShip(cells []Cell) *Ship {
	return &Ship{
		cells:     cells,
		remaining: collections.Of(cells...),
	}
}

// Cells returns every cell the ship was placed on, hit or not
func (ship *Ship) Cells() []Cell {
	return ship.cells
}

// Size is the number of cells the ship was placed on
func (ship *Ship) Size() int {
	return len(ship.cells)
}

// Remaining is the number of cells not yet hit
func (ship *Ship) Remaining() int {
	return ship.remaining.Len()
}

func (ship *Ship) IsSunk() bool {
	return ship.remaining.IsEmpty()
}

// Board is one player's own grid: where their ships are and where the
// opponent has fired
type Board struct {
	cells   [GridSize][GridSize]CellState
	history [GridSize][GridSize]Mark

	// ships still afloat; shrinks as ships are sunk
	fleet []*Ship
	// every ship ever placed, by cell
	shipAt map[Cell]*Ship
}

// NewBoard builds a board from map rows. Only the first GridSize rows and
// columns are read, missing ones count as water, and any character other than
// '#' is water. Columns count characters, not bytes.
func NewBoard(rows []string) *Board {
	board := &Board{
		shipAt: make(map[Cell]*Ship),
	}

	for row := 0; row < GridSize && row < len(rows); row++ {
		line := []rune(rows[row])
		for col := 0; col < GridSize && col < len(line); col++ {
			if line[col] == shipChar {
				board.cells[row][col] = ShipCell
			}
		}
	}

	board.findShips()
	return board
}

// LoadBoard reads a map in the text format described by NewBoard
func LoadBoard(in io.Reader) (*Board, error) {
	rows := make([]string, 0, GridSize)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() && len(rows) < GridSize {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading map")
	}

	return NewBoard(rows), nil
}

func LoadBoardFile(path string) (*Board, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening map")
	}
	defer file.Close()

	board, err := LoadBoard(file)
	return board, errors.Wrapf(err, "loading map %s", path)
}

func (board *Board) findShips() {
	for _, cell := range AllCells() {
		if board.StateAt(cell) != ShipCell {
			continue
		}
		if _, seen := board.shipAt[cell]; seen {
			continue
		}

		ship := newShip(component(cell, func(neighbor Cell) bool {
			return board.StateAt(neighbor) == ShipCell
		}))
		for _, shipCell := range ship.cells {
			board.shipAt[shipCell] = ship
		}
		board.fleet = append(board.fleet, ship)
	}
}

func (board *Board) StateAt(cell Cell) CellState {
	return board.cells[cell.Row][cell.Col]
}

// MarkAt returns what the opponent learned about the cell by firing at it
func (board *Board) MarkAt(cell Cell) Mark {
	return board.history[cell.Row][cell.Col]
}

// Ships returns every ship placed on the board, sunk ones included
func (board *Board) Ships() []*Ship {
	ships := make([]*Ship, 0, len(board.shipAt))
	seen := make(collections.Set[*Ship])
	for _, cell := range AllCells() {
		if ship, ok := board.shipAt[cell]; ok && !seen.Contains(ship) {
			seen.Add(ship)
			ships = append(ships, ship)
		}
	}
	return ships
}

// RemainingShips is the number of ships still afloat
func (board *Board) RemainingShips() int {
	return len(board.fleet)
}

func (board *Board) FleetDestroyed() bool {
	return len(board.fleet) == 0
}

// ResolveIncomingShot applies an opponent's shot at cell and reports its
// outcome. Firing at a cell a second time reports the same kind of outcome
// again without touching the fleet.
func (board *Board) ResolveIncomingShot(cell Cell) Outcome {
	if board.MarkAt(cell) != Unknown {
		return board.rederive(cell)
	}

	ship, isShip := board.shipAt[cell]
	if !isShip {
		board.history[cell.Row][cell.Col] = Miss
		return ShotMiss
	}

	board.history[cell.Row][cell.Col] = Hit
	ship.remaining.Remove(cell)
	if !ship.IsSunk() {
		return ShotHit
	}

	board.removeFromFleet(ship)
	if board.FleetDestroyed() {
		return ShotLastSunk
	}
	return ShotSunk
}

func (board *Board) rederive(cell Cell) Outcome {
	ship, isShip := board.shipAt[cell]
	switch {
	case !isShip:
		return ShotMiss
	case ship.IsSunk():
		return ShotSunk
	default:
		return ShotHit
	}
}

func (board *Board) removeFromFleet(sunk *Ship) {
	for i, ship := range board.fleet {
		if ship == sunk {
			board.fleet = append(board.fleet[:i], board.fleet[i+1:]...)
			return
		}
	}
}

// Layout renders the ship placement alone, in map file format
func (board *Board) Layout() string {
	return render(func(cell Cell) byte {
		if board.StateAt(cell) == ShipCell {
			return shipChar
		}
		return waterChar
	})
}

// String renders the board with the opponent's shots on top: '@' for a hit,
// '~' for a miss
func (board *Board) String() string {
	return render(func(cell Cell) byte {
		switch board.MarkAt(cell) {
		case Hit:
			return hitChar
		case Miss:
			return missChar
		}
		if board.StateAt(cell) == ShipCell {
			return shipChar
		}
		return waterChar
	})
}

func render(charAt func(Cell) byte) string {
	var builder strings.Builder
	builder.Grow(GridSize * (GridSize + 1))
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			builder.WriteByte(charAt(Cell{Row: row, Col: col}))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
