package human

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/broadside/game"
)

func TestDirectorRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	view := game.NewEnemyView()
	view.MarkFired(game.Cell{Row: 2, Col: 1})

	director := &Director{
		In:  strings.NewReader("\nZ9\nA11\nb3\n c4 \n"),
		Out: &out,
	}
	director.Init(view)

	cell, err := director.NextShot()
	require.NoError(t, err)
	assert.Equal(t, game.Cell{Row: 3, Col: 2}, cell)

	assert.Equal(t, 2, strings.Count(out.String(), "Invalid coordinate"))
	assert.Contains(t, out.String(), "Already fired at B3.")
	assert.Equal(t, 5, strings.Count(out.String(), "Your move"))
}

func TestDirectorStopsAtEndOfInput(t *testing.T) {
	director := &Director{
		In:  strings.NewReader("K1\n"),
		Out: io.Discard,
	}
	director.Init(game.NewEnemyView())

	_, err := director.NextShot()
	assert.True(t, errors.Is(err, io.EOF))
}
