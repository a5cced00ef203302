package human

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/they4kman/broadside/game"
)

// Director asks the player at the console where to fire
type Director struct {
	In  io.Reader
	Out io.Writer

	view    *game.EnemyView
	scanner *bufio.Scanner
}

func (director *Director) Init(view *game.EnemyView) {
	director.view = view
	director.scanner = bufio.NewScanner(director.In)
}

// NextShot prompts until the player enters a coordinate on the board they have
// not fired at yet
func (director *Director) NextShot() (game.Cell, error) {
	fmt.Fprintf(director.Out, "Enemy board:\n%s", director.view.Render(true))

	for {
		fmt.Fprint(director.Out, "Your move (e.g. A5): ")
		if !director.scanner.Scan() {
			err := director.scanner.Err()
			if err == nil {
				err = io.EOF
			}
			return game.Cell{}, errors.Wrap(err, "reading move")
		}

		input := director.scanner.Text()
		if len(input) == 0 {
			continue
		}

		cell, err := game.ParseCell(input)
		if err != nil {
			fmt.Fprintln(director.Out, "Invalid coordinate, use a letter A-J and a number 1-10.")
			continue
		}
		if director.view.HasFired(cell) {
			fmt.Fprintf(director.Out, "Already fired at %s.\n", cell)
			continue
		}

		return cell, nil
	}
}

func (director *Director) End() {}
