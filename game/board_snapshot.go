package game

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// BoardSnapshot is the final state of one side of a match
type BoardSnapshot struct {
	Result          string   `yaml:"result"`
	Seed            int64    `yaml:"seed"`
	SerializedBoard string   `yaml:"board"`
	SerializedView  string   `yaml:"enemy"`
	ShotsFired      []string `yaml:"shots,flow"`
}

// NewBoardSnapshot captures a board, the matching enemy view and the shots
// fired, in firing order
func NewBoardSnapshot(result string, seed int64, board *Board, view *EnemyView, shots []Cell) *BoardSnapshot {
	snapshot := &BoardSnapshot{
		Result:          result,
		Seed:            seed,
		SerializedBoard: board.String(),
		SerializedView:  view.Render(true),
		ShotsFired:      make([]string, len(shots)),
	}
	for i, shot := range shots {
		snapshot.ShotsFired[i] = shot.String()
	}
	return snapshot
}

func (snapshot *BoardSnapshot) Serialize() string {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		panic(err)
	}

	return string(out)
}

// CreateBoard rebuilds the board, replaying the opponent's recorded shots so
// that sunk ships leave the fleet again
func (snapshot *BoardSnapshot) CreateBoard() (*Board, error) {
	rows := strings.Split(strings.TrimRight(snapshot.SerializedBoard, "\n"), "\n")
	if len(rows) != GridSize {
		return nil, errors.Errorf("snapshot board has %d rows, expected %d", len(rows), GridSize)
	}

	layout := make([]string, len(rows))
	var shots []Cell
	for row, line := range rows {
		if len(line) != GridSize {
			return nil, errors.Errorf("snapshot row %d has %d cells, expected %d", row+1, len(line), GridSize)
		}

		placed := []byte(line)
		for col, c := range placed {
			switch c {
			case hitChar:
				placed[col] = shipChar
				shots = append(shots, Cell{Row: row, Col: col})
			case missChar:
				placed[col] = waterChar
				shots = append(shots, Cell{Row: row, Col: col})
			}
		}
		layout[row] = string(placed)
	}

	board := NewBoard(layout)
	for _, shot := range shots {
		board.ResolveIncomingShot(shot)
	}
	return board, nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "parsing snapshot")
	}
	return &snapshot, nil
}
