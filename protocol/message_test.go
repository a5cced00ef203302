package protocol

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/broadside/game"
)

func TestParseWireForms(t *testing.T) {
	c7 := game.Cell{Row: 6, Col: 2}

	cases := map[string]Message{
		"start;C7":              StartMessage(c7),
		"pudło;C7":              ResultMessage(game.ShotMiss, c7),
		"pudlo;c7\r":            ResultMessage(game.ShotMiss, c7),
		"trafiony;C7":           ResultMessage(game.ShotHit, c7),
		"trafiony zatopiony;C7": ResultMessage(game.ShotSunk, c7),
		"ostatni zatopiony":     FinalMessage(),
		"ostatni zatopiony;C7":  FinalMessage(),
	}

	for line, expected := range cases {
		message, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, expected, message, line)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"hello",
		"start",
		"start;",
		"start;Z9",
		"trafiony;",
		"boom;A1",
		"trafiony;A11",
	} {
		_, err := Parse(line)
		assert.True(t, errors.Is(err, ErrMalformedMessage), "expected %q to be rejected", line)
	}
}

func TestEncodeParsesBack(t *testing.T) {
	j10 := game.Cell{Row: 9, Col: 9}
	for _, message := range []Message{
		StartMessage(j10),
		ResultMessage(game.ShotMiss, j10),
		ResultMessage(game.ShotHit, j10),
		ResultMessage(game.ShotSunk, j10),
		FinalMessage(),
	} {
		parsed, err := Parse(message.Encode())
		require.NoError(t, err)
		assert.Equal(t, message, parsed)
	}
}

func TestEncode(t *testing.T) {
	a1 := game.Cell{}
	assert.Equal(t, "start;A1", StartMessage(a1).Encode())
	assert.Equal(t, "trafiony zatopiony;A1", ResultMessage(game.ShotSunk, a1).Encode())
	assert.Equal(t, "ostatni zatopiony", ResultMessage(game.ShotLastSunk, a1).Encode())
	assert.False(t, StartMessage(a1).HasResult())
	assert.True(t, FinalMessage().HasResult())
}
