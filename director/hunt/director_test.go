package hunt

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/broadside/game"
)

func cell(t *testing.T, s string) game.Cell {
	t.Helper()
	c, err := game.ParseCell(s)
	require.NoError(t, err)
	return c
}

func fire(view *game.EnemyView, at game.Cell, outcome game.Outcome) {
	view.MarkFired(at)
	view.Record(at, outcome)
}

func TestDirectorFinishesWoundedShip(t *testing.T) {
	view := game.NewEnemyView()
	director := &Director{Rand: rand.New(rand.NewSource(7))}
	director.Init(view)
	defer director.End()

	fire(view, cell(t, "E5"), game.ShotHit)

	shot, err := director.NextShot()
	require.NoError(t, err)
	assert.Contains(t, cell(t, "E5").SideNeighbors(), shot)
}

func TestDirectorFollowsLineOfHits(t *testing.T) {
	view := game.NewEnemyView()
	director := &Director{Rand: rand.New(rand.NewSource(7))}
	director.Init(view)

	fire(view, cell(t, "E5"), game.ShotHit)
	fire(view, cell(t, "F5"), game.ShotHit)

	for i := 0; i < 10; i++ {
		shot, err := director.NextShot()
		require.NoError(t, err)
		assert.Contains(t, []game.Cell{cell(t, "D5"), cell(t, "G5")}, shot)
	}
}

func TestDirectorIgnoresSunkShips(t *testing.T) {
	view := game.NewEnemyView()
	director := &Director{Rand: rand.New(rand.NewSource(3))}
	director.Init(view)

	fire(view, cell(t, "E5"), game.ShotSunk)

	shot, err := director.NextShot()
	require.NoError(t, err)
	assert.Equal(t, game.Unknown, view.State(shot))
	assert.False(t, view.HasFired(shot))
	assert.NotContains(t, cell(t, "E5").Neighbors(), shot)
}

func TestDirectorSinksFleet(t *testing.T) {
	board, err := game.LoadBoard(strings.NewReader(game.SampleMap))
	require.NoError(t, err)

	view := game.NewEnemyView()
	director := &Director{Rand: rand.New(rand.NewSource(11))}
	director.Init(view)

	for shots := 1; shots <= game.GridSize*game.GridSize; shots++ {
		shot, err := director.NextShot()
		require.NoError(t, err)
		require.False(t, view.HasFired(shot))

		outcome := board.ResolveIncomingShot(shot)
		fire(view, shot, outcome)
		if outcome == game.ShotLastSunk {
			return
		}
	}
	t.Fatal("fleet still afloat after firing at every cell")
}
