package game

import "github.com/pkg/errors"

var ErrNoShotsLeft = errors.New("no cells left to fire at")

// Director chooses where the local player fires next
type Director interface {
	/**
	 * Initialize the director with the view it will be choosing targets from
	 */
	Init(*EnemyView)

	/**
	 * Choose the next cell to fire at. The cell is never one already fired at.
	 */
	NextShot() (Cell, error)

	/**
	 * Stop choosing
	 */
	End()
}
