package hunt

import (
	"math/rand"
	"time"

	"github.com/they4kman/broadside/director/random"
	"github.com/they4kman/broadside/game"
)

// Director finishes off ships it has wounded before searching for new ones
type Director struct {
	Rand *rand.Rand

	view   *game.EnemyView
	search *random.Director
}

type target struct {
	cell  game.Cell
	score int
}

func (director *Director) Init(view *game.EnemyView) {
	if director.Rand == nil {
		director.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	director.view = view
	director.search = &random.Director{Rand: director.Rand}
	director.search.Init(view)
}

func (director *Director) NextShot() (game.Cell, error) {
	actors := []func() (game.Cell, bool){
		director.actFinish,
		director.actSearch,
	}

	for _, actor := range actors {
		if cell, found := actor(); found {
			return cell, nil
		}
	}
	return game.Cell{}, game.ErrNoShotsLeft
}

// actFinish fires next to a hit that no sunk ship has accounted for. Cells
// continuing a line of hits are preferred, as ships are straight more often
// than not.
func (director *Director) actFinish() (game.Cell, bool) {
	bestScore := 0
	var best []game.Cell

	for _, candidate := range director.targets() {
		if candidate.score > bestScore {
			bestScore = candidate.score
			best = best[:0]
		}
		if candidate.score == bestScore {
			best = append(best, candidate.cell)
		}
	}

	if len(best) == 0 {
		return game.Cell{}, false
	}
	return best[director.Rand.Intn(len(best))], true
}

func (director *Director) targets() []target {
	view := director.view
	scores := make(map[game.Cell]int)
	order := make([]game.Cell, 0)

	for _, hit := range game.AllCells() {
		if view.State(hit) != game.Hit {
			continue
		}

		for _, neighbor := range hit.SideNeighbors() {
			if view.State(neighbor) != game.Unknown || view.HasFired(neighbor) {
				continue
			}

			score := 1
			behind := game.Cell{Row: 2*hit.Row - neighbor.Row, Col: 2*hit.Col - neighbor.Col}
			if behind.InBounds() && view.State(behind) == game.Hit {
				score = 2
			}

			if _, seen := scores[neighbor]; !seen {
				order = append(order, neighbor)
			}
			if score > scores[neighbor] {
				scores[neighbor] = score
			}
		}
	}

	targets := make([]target, len(order))
	for i, cell := range order {
		targets[i] = target{cell: cell, score: scores[cell]}
	}
	return targets
}

// actSearch fires at a random cell not yet known to be water
func (director *Director) actSearch() (game.Cell, bool) {
	for {
		cell, err := director.search.NextShot()
		if err != nil {
			return game.Cell{}, false
		}
		if director.view.State(cell) == game.Unknown {
			return cell, true
		}
	}
}

func (director *Director) End() {
	director.search.End()
}
