package random

import (
	"math/rand"
	"time"

	"github.com/they4kman/broadside/game"
)

// Director fires at every cell of the grid once, in a random order
type Director struct {
	Rand *rand.Rand

	view  *game.EnemyView
	order []game.Cell
	next  int
}

func (director *Director) Init(view *game.EnemyView) {
	if director.Rand == nil {
		director.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	director.view = view
	director.order = game.AllCells()
	director.next = 0

	director.Rand.Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) NextShot() (game.Cell, error) {
	for director.next < len(director.order) {
		cell := director.order[director.next]
		director.next++

		if !director.view.HasFired(cell) {
			return cell, nil
		}
	}
	return game.Cell{}, game.ErrNoShotsLeft
}

func (director *Director) End() {}
