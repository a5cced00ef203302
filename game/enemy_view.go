package game

import (
	"github.com/they4kman/broadside/util/collections"
)

// EnemyView is what a player knows about the opponent's board, learned only
// from the outcomes of their own shots
type EnemyView struct {
	marks [GridSize][GridSize]Mark
	fired collections.Set[Cell]
}

func NewEnemyView() *EnemyView {
	return &EnemyView{
		fired: make(collections.Set[Cell]),
	}
}

func (view *EnemyView) State(cell Cell) Mark {
	return view.marks[cell.Row][cell.Col]
}

// MarkFired remembers that a shot at cell has been sent
func (view *EnemyView) MarkFired(cell Cell) {
	view.fired.Add(cell)
}

func (view *EnemyView) HasFired(cell Cell) bool {
	return view.fired.Contains(cell)
}

func (view *EnemyView) NumFired() int {
	return view.fired.Len()
}

// UnknownCells returns the cells neither hit nor known to be water
func (view *EnemyView) UnknownCells() []Cell {
	cells := make([]Cell, 0, GridSize*GridSize)
	for _, cell := range AllCells() {
		if view.State(cell) == Unknown {
			cells = append(cells, cell)
		}
	}
	return cells
}

// Record stores the outcome reported for a shot at cell. When the outcome
// sinks a ship, the water around it is marked too, and those cells are
// returned.
func (view *EnemyView) Record(cell Cell, outcome Outcome) []Cell {
	if outcome == ShotMiss {
		view.marks[cell.Row][cell.Col] = Miss
		return nil
	}

	view.marks[cell.Row][cell.Col] = Hit
	if outcome.IsSunk() {
		return view.MarkDeadZone(cell)
	}
	return nil
}

// MarkDeadZone collects the sunk ship containing lastHit from the connected hit
// marks around it, then marks every unknown cell touching the ship, diagonals
// included, as a miss. Existing marks are never overwritten. The newly marked
// cells are returned.
func (view *EnemyView) MarkDeadZone(lastHit Cell) []Cell {
	ship := make([]Cell, 0, 4)
	flood(
		lastHit,
		func(cell Cell) {
			ship = append(ship, cell)
		},
		func(cell Cell) []Cell {
			parts := make([]Cell, 0, 4)
			for _, neighbor := range cell.SideNeighbors() {
				if view.State(neighbor) == Hit {
					parts = append(parts, neighbor)
				}
			}
			return parts
		},
	)

	var marked []Cell
	for _, part := range ship {
		for _, neighbor := range part.Neighbors() {
			if view.State(neighbor) == Unknown {
				view.marks[neighbor.Row][neighbor.Col] = Miss
				marked = append(marked, neighbor)
			}
		}
	}
	return marked
}

// Render draws the view: '#' for hits, '.' for misses, and unknown cells as
// '?' when maskUnknown is set or '.' otherwise
func (view *EnemyView) Render(maskUnknown bool) string {
	return render(func(cell Cell) byte {
		switch view.State(cell) {
		case Hit:
			return shipChar
		case Miss:
			return waterChar
		}
		if maskUnknown {
			return unknownChar
		}
		return waterChar
	})
}
