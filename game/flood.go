package game

import (
	"github.com/gammazero/deque"
	"github.com/they4kman/broadside/util/collections"
)

type NeighborGetter func(Cell) []Cell
type Visitor func(Cell)

// flood visits start and every cell reachable from it through getNeighbors,
// breadth-first, each exactly once
func flood(start Cell, visit Visitor, getNeighbors NeighborGetter) {
	visited := collections.Of(start)

	var visitQueue deque.Deque
	visitQueue.PushBack(start)

	for visitQueue.Len() > 0 {
		cell := visitQueue.PopFront().(Cell)
		visit(cell)

		for _, neighbor := range getNeighbors(cell) {
			if visited.Contains(neighbor) {
				continue
			}
			visited.Add(neighbor)
			visitQueue.PushBack(neighbor)
		}
	}
}

// component returns the cells reachable from start through side neighbors
// accepted by include, in visiting order
func component(start Cell, include func(Cell) bool) []Cell {
	cells := make([]Cell, 0, 4)
	flood(
		start,
		func(cell Cell) {
			cells = append(cells, cell)
		},
		func(cell Cell) []Cell {
			neighbors := make([]Cell, 0, 4)
			for _, neighbor := range cell.SideNeighbors() {
				if include(neighbor) {
					neighbors = append(neighbors, neighbor)
				}
			}
			return neighbors
		},
	)
	return cells
}
