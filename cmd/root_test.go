package cmd

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/broadside/director/human"
	"github.com/they4kman/broadside/director/hunt"
	"github.com/they4kman/broadside/director/random"
	"github.com/they4kman/broadside/game"
	"github.com/they4kman/broadside/match"
	"github.com/they4kman/broadside/transport"
)

func TestNewDirector(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	director, err := newDirector("random", rng)
	require.NoError(t, err)
	assert.IsType(t, &random.Director{}, director)

	director, err = newDirector("hunt", rng)
	require.NoError(t, err)
	assert.IsType(t, &hunt.Director{}, director)

	director, err = newDirector("human", rng)
	require.NoError(t, err)
	assert.IsType(t, &human.Director{}, director)

	_, err = newDirector("psychic", rng)
	assert.Error(t, err)
}

func TestFlagValues(t *testing.T) {
	var role match.Role
	roleVal := newRoleValue(&role)
	assert.Equal(t, "", roleVal.String())
	require.NoError(t, roleVal.Set("client"))
	assert.Equal(t, match.Client, role)
	assert.Error(t, roleVal.Set("spectator"))

	strategy := "random"
	strategyVal := newStrategyValue(&strategy)
	require.NoError(t, strategyVal.Set("hunt"))
	assert.Equal(t, "hunt", strategy)
	assert.Error(t, strategyVal.Set("psychic"))
	assert.Equal(t, "hunt", strategy)

	kind := transport.TCP
	transportVal := transportValue{&kind}
	require.NoError(t, transportVal.Set("ws"))
	assert.Equal(t, transport.WebSocket, kind)
	assert.Error(t, transportVal.Set("carrier-pigeon"))
}

func TestConfigFileKeepsExplicitFlags(t *testing.T) {
	saved := matchConfig
	defer func() {
		matchConfig = saved
		configPath = ""
	}()

	configPath = filepath.Join(t.TempDir(), "broadside.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("role: server\nport: 5555\nhost: example.org\n"), 0644))

	flags := rootCmd.Flags()
	require.NoError(t, flags.Set("port", "1234"))
	defer flags.Lookup("port").Value.Set("9999")
	defer func() { flags.Lookup("port").Changed = false }()

	require.NoError(t, loadConfigFile(flags))
	assert.Equal(t, 1234, matchConfig.Port)
	assert.Equal(t, "example.org", matchConfig.Host)
	assert.Equal(t, match.Server, matchConfig.Role)
}

func TestInspectPrintsSnapshot(t *testing.T) {
	board, err := game.LoadBoard(strings.NewReader(game.SampleMap))
	require.NoError(t, err)
	hit, err := game.ParseCell("B2")
	require.NoError(t, err)
	board.ResolveIncomingShot(hit)

	shot, err := game.ParseCell("C3")
	require.NoError(t, err)
	view := game.NewEnemyView()
	view.Record(shot, game.ShotMiss)

	path := filepath.Join(t.TempDir(), "match.yaml")
	snapshot := game.NewBoardSnapshot("loss", 7, board, view, []game.Cell{shot})
	require.NoError(t, os.WriteFile(path, []byte(snapshot.Serialize()), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"inspect", path})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Result: loss (seed 7)")
	assert.Contains(t, out.String(), "Shots fired: 1 (C3)")
	assert.Contains(t, out.String(), "Ships afloat: 5 of 5")
	assert.Contains(t, out.String(), ".@###.....")
}
