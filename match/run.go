package match

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/they4kman/broadside/game"
	"github.com/they4kman/broadside/protocol"
	"github.com/they4kman/broadside/transport"
)

// Run loads the map, connects to the peer as configured and plays one match
func Run(config Config) (Result, error) {
	if err := config.Validate(); err != nil {
		return Ongoing, err
	}

	board, err := game.LoadBoardFile(config.MapPath)
	if err != nil {
		return Ongoing, err
	}

	fmt.Fprintln(config.Out, "Your board:")
	fmt.Fprint(config.Out, board.Layout())

	stream, err := Connect(config)
	if err != nil {
		return Ongoing, err
	}

	return Play(config, board, stream)
}

// Connect waits for the peer as a server, or dials it as a client
func Connect(config Config) (protocol.Stream, error) {
	address := config.Address()
	logger := log.WithFields(log.Fields{
		"role":      config.Role.String(),
		"transport": config.Transport,
		"address":   address,
	})

	if config.Role == Client {
		logger.Info("Connecting")
		stream, err := transport.Dial(config.Transport, address, config.ReadTimeout)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected")
		return stream, nil
	}

	listener, err := transport.Listen(config.Transport, address)
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	logger.WithField("address", listener.Addr()).Info("Waiting for peer")
	stream, err := listener.Accept()
	if err != nil {
		return nil, err
	}
	logger.Info("Peer connected")
	return stream, nil
}

// Play runs one match over an established stream, then prints the report and
// saves a snapshot if configured. The stream is closed on return.
func Play(config Config, board *game.Board, stream protocol.Stream) (Result, error) {
	if config.Director == nil {
		stream.Close()
		return Ongoing, errors.New("no director configured")
	}

	session := protocol.NewSession(stream, config.sessionConfig())
	engine := NewEngine(config.Role, board, config.Director, session)

	result, err := engine.Run()
	if err != nil {
		return result, err
	}

	engine.Report(config.Out)

	if config.SavedSnapshotsDir != "" {
		path, err := saveSnapshot(config.SavedSnapshotsDir, engine.Snapshot(config.Seed), time.Now())
		if err != nil {
			log.WithError(err).Warn("Could not save snapshot")
		} else {
			log.WithField("path", path).Info("Snapshot saved")
		}
	}

	return result, nil
}
