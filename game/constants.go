package game

// GridSize is the width and height of every board, in cells
const GridSize = 10

// CellState is what the owner of a board placed in a cell
type CellState int

const (
	Water CellState = iota
	ShipCell
)

// Mark is what is known about a cell after it has been fired upon
type Mark int

const (
	Unknown Mark = iota
	Hit
	Miss
)

// Outcome is the result of resolving one shot against a board
type Outcome int

const (
	ShotMiss Outcome = iota
	ShotHit
	ShotSunk
	ShotLastSunk
)

var outcomeNames = map[Outcome]string{
	ShotMiss:     "miss",
	ShotHit:      "hit",
	ShotSunk:     "hit-and-sunk",
	ShotLastSunk: "last-ship-sunk",
}

func (outcome Outcome) String() string {
	if name, ok := outcomeNames[outcome]; ok {
		return name
	}
	return "unknown"
}

// IsSunk reports whether the outcome confirms a ship went down
func (outcome Outcome) IsSunk() bool {
	return outcome == ShotSunk || outcome == ShotLastSunk
}

// Characters used by map files, snapshots and the console rendering
const (
	shipChar    = '#'
	waterChar   = '.'
	hitChar     = '@'
	missChar    = '~'
	unknownChar = '?'
)

// SampleMap is a ready-to-play fleet layout
const SampleMap = `..........
.####.....
..........
...###....
..........
.....##...
..........
.##.......
..........
......#...
`
