package match

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/they4kman/broadside/game"
)

// Report prints the result of the match followed by both boards. The enemy
// board shows unexplored cells as '?' when the match was lost.
func (engine *Engine) Report(out io.Writer) {
	switch engine.result {
	case Won:
		fmt.Fprintln(out, "You won!")
	case Lost:
		fmt.Fprintln(out, "You lost.")
	}

	fmt.Fprintln(out, "Enemy board:")
	fmt.Fprint(out, engine.view.Render(engine.result != Won))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Your board:")
	fmt.Fprint(out, engine.board.String())
}

func (engine *Engine) Snapshot(seed int64) *game.BoardSnapshot {
	return game.NewBoardSnapshot(engine.result.String(), seed, engine.board, engine.view, engine.shots)
}

// saveSnapshot writes the final state of the match into dir, creating it if
// needed, and returns the path written
func saveSnapshot(dir string, snapshot *game.BoardSnapshot, t time.Time) (string, error) {
	stat, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", errors.Wrap(err, "checking snapshots directory")
		}
		if err := os.MkdirAll(dir, 0777); err != nil {
			return "", errors.Wrap(err, "creating snapshots directory")
		}
	} else if !stat.Mode().IsDir() {
		return "", errors.Errorf("%s is not a directory; cannot save snapshots to it", dir)
	}

	path := filepath.Join(dir, generateSnapshotFilename(snapshot.Result, t))
	if err := os.WriteFile(path, []byte(snapshot.Serialize()), 0666); err != nil {
		return "", errors.Wrap(err, "writing snapshot")
	}
	return path, nil
}

func generateSnapshotFilename(result string, t time.Time) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405.000_"))

	var stateStr string
	switch result {
	case Won.String():
		stateStr = "win"
	case Lost.String():
		stateStr = "loss"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	filenameBuilder.WriteString(".yaml")

	return filenameBuilder.String()
}
