package protocol

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/they4kman/broadside/game"
)

var ErrMalformedMessage = errors.New("malformed message")

const Separator = ";"

// Wire tokens
const (
	tokenStart     = "start"
	tokenMiss      = "pudło"
	tokenMissASCII = "pudlo"
	tokenHit       = "trafiony"
	tokenSunk      = "trafiony zatopiony"
	tokenLastSunk  = "ostatni zatopiony"
)

var outcomeTokens = map[game.Outcome]string{
	game.ShotMiss:     tokenMiss,
	game.ShotHit:      tokenHit,
	game.ShotSunk:     tokenSunk,
	game.ShotLastSunk: tokenLastSunk,
}

var tokenOutcomes = map[string]game.Outcome{
	tokenMiss:      game.ShotMiss,
	tokenMissASCII: game.ShotMiss,
	tokenHit:       game.ShotHit,
	tokenSunk:      game.ShotSunk,
	tokenLastSunk:  game.ShotLastSunk,
}

type Kind int

const (
	// Start opens the match with the first shot
	Start Kind = iota
	// Result reports the outcome of the previous shot and carries the next one
	Result
	// Final reports that the last ship sank; nothing follows it
	Final
)

type Message struct {
	Kind    Kind
	Outcome game.Outcome
	Target  *game.Cell
}

func StartMessage(target game.Cell) Message {
	return Message{Kind: Start, Target: &target}
}

func ResultMessage(outcome game.Outcome, target game.Cell) Message {
	if outcome == game.ShotLastSunk {
		return FinalMessage()
	}
	return Message{Kind: Result, Outcome: outcome, Target: &target}
}

func FinalMessage() Message {
	return Message{Kind: Final, Outcome: game.ShotLastSunk}
}

// HasResult reports whether the message answers a shot the receiver fired
func (message Message) HasResult() bool {
	return message.Kind != Start
}

// Encode renders the message as one line, without the terminating newline
func (message Message) Encode() string {
	switch message.Kind {
	case Start:
		return tokenStart + Separator + message.Target.String()
	case Final:
		return tokenLastSunk
	default:
		return outcomeTokens[message.Outcome] + Separator + message.Target.String()
	}
}

func (message Message) String() string {
	return message.Encode()
}

// Parse reads one line of the wire protocol
func Parse(line string) (Message, error) {
	line = strings.TrimSpace(line)

	command, coords, hasSeparator := strings.Cut(line, Separator)
	if !hasSeparator {
		if line == tokenLastSunk {
			return FinalMessage(), nil
		}
		return Message{}, errors.Wrapf(ErrMalformedMessage, "%q has no separator", line)
	}

	command = strings.TrimSpace(command)
	if command == tokenLastSunk {
		return FinalMessage(), nil
	}

	kind := Result
	outcome, isResult := tokenOutcomes[command]
	if command == tokenStart {
		kind = Start
	} else if !isResult {
		return Message{}, errors.Wrapf(ErrMalformedMessage, "unknown command %q", command)
	}

	target, err := game.ParseCell(coords)
	if err != nil {
		return Message{}, errors.Wrapf(ErrMalformedMessage, "%q: %v", line, err)
	}

	return Message{Kind: kind, Outcome: outcome, Target: &target}, nil
}
