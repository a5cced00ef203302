package match

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/broadside/game"
)

func TestSaveSnapshot(t *testing.T) {
	engine, _ := newScriptedEngine(Server, game.NewBoard([]string{"#"}), &sequenceDirector{}, "start;A1")
	_, err := engine.Run()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "snapshots")
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	path, err := saveSnapshot(dir, engine.Snapshot(42), at)
	require.NoError(t, err)
	assert.Equal(t, "20240301_123000.000_loss.yaml", filepath.Base(path))

	in, err := os.ReadFile(path)
	require.NoError(t, err)
	snapshot, err := game.LoadSnapshot(string(in))
	require.NoError(t, err)
	assert.Equal(t, "lost", snapshot.Result)
	assert.Equal(t, int64(42), snapshot.Seed)

	board, err := snapshot.CreateBoard()
	require.NoError(t, err)
	assert.True(t, board.FleetDestroyed())
}

func TestSaveSnapshotRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(file, nil, 0666))

	_, err := saveSnapshot(file, &game.BoardSnapshot{}, time.Now())
	assert.Error(t, err)
}
