package match

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/they4kman/broadside/game"
	"github.com/they4kman/broadside/protocol"
)

type State int

const (
	AwaitingFirstMove State = iota
	AwaitingOpponentMessage
	ProcessingIncomingShot
	GameOver
)

type Result int

const (
	Ongoing Result = iota
	Won
	Lost
)

func (result Result) String() string {
	switch result {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "ongoing"
	}
}

// Engine plays one match over one session, alternating shots with the peer
// until either fleet is destroyed
type Engine struct {
	role     Role
	board    *game.Board
	view     *game.EnemyView
	director game.Director
	session  *protocol.Session

	state  State
	result Result

	// every shot sent, in order; the last one is what the next result refers to
	shots []game.Cell

	logger *log.Entry
}

func NewEngine(role Role, board *game.Board, director game.Director, session *protocol.Session) *Engine {
	return &Engine{
		role:     role,
		board:    board,
		view:     game.NewEnemyView(),
		director: director,
		session:  session,
		state:    AwaitingFirstMove,
		logger: log.WithFields(log.Fields{
			"role":    role.String(),
			"session": session.ID,
		}),
	}
}

func (engine *Engine) State() State {
	return engine.state
}

func (engine *Engine) Result() Result {
	return engine.result
}

func (engine *Engine) Board() *game.Board {
	return engine.board
}

func (engine *Engine) View() *game.EnemyView {
	return engine.view
}

// Shots returns every shot this peer has fired, in order
func (engine *Engine) Shots() []game.Cell {
	return engine.shots
}

// Run plays the match to its end. The session is closed when Run returns,
// whatever the outcome. A link that stays broken through every retry ends the
// match with protocol.ErrRetriesExhausted.
func (engine *Engine) Run() (Result, error) {
	defer func() {
		if err := engine.session.Close(); err != nil {
			engine.logger.WithError(err).Debug("Closing session")
		}
	}()

	engine.director.Init(engine.view)
	defer engine.director.End()

	if engine.role == Client {
		shot, err := engine.nextShot()
		if err != nil {
			return Ongoing, err
		}
		engine.session.Send(protocol.StartMessage(shot))
		engine.state = AwaitingOpponentMessage
	}

	for engine.state != GameOver {
		message, err := engine.session.ReceiveWithRetry()
		if err != nil {
			return Ongoing, err
		}

		engine.state = ProcessingIncomingShot
		if err := engine.handle(message); err != nil {
			return Ongoing, err
		}
	}

	engine.logger.WithField("result", engine.result).Info("Match over")
	return engine.result, nil
}

func (engine *Engine) handle(message protocol.Message) error {
	if message.HasResult() {
		engine.recordResult(message.Outcome)

		if message.Kind == protocol.Final {
			engine.finish(Won)
			return nil
		}
	}

	if message.Target == nil {
		engine.state = AwaitingOpponentMessage
		return nil
	}

	incoming := *message.Target
	outcome := engine.board.ResolveIncomingShot(incoming)
	engine.logger.WithFields(log.Fields{
		"cell":    incoming.String(),
		"outcome": outcome,
	}).Info("Opponent fired")

	if outcome == game.ShotLastSunk {
		engine.session.Send(protocol.FinalMessage())
		engine.finish(Lost)
		return nil
	}

	shot, err := engine.nextShot()
	if err != nil {
		return err
	}
	engine.session.Send(protocol.ResultMessage(outcome, shot))
	engine.state = AwaitingOpponentMessage
	return nil
}

// recordResult applies an outcome to the cell this peer fired at last.
// Results are not checked against what was fired; a result arriving before
// any shot is ignored.
func (engine *Engine) recordResult(outcome game.Outcome) {
	if len(engine.shots) == 0 {
		engine.logger.WithField("outcome", outcome).Warn("Result received before any shot was fired")
		return
	}

	target := engine.shots[len(engine.shots)-1]
	deadZone := engine.view.Record(target, outcome)
	engine.logger.WithFields(log.Fields{
		"cell":     target.String(),
		"outcome":  outcome,
		"deadZone": len(deadZone),
	}).Info("Shot resolved")
}

func (engine *Engine) nextShot() (game.Cell, error) {
	shot, err := engine.director.NextShot()
	if err != nil {
		return game.Cell{}, errors.Wrap(err, "choosing next shot")
	}

	engine.view.MarkFired(shot)
	engine.shots = append(engine.shots, shot)
	return shot, nil
}

func (engine *Engine) finish(result Result) {
	engine.result = result
	engine.state = GameOver
}
