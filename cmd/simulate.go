package cmd

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/broadside/game"
	"github.com/they4kman/broadside/match"
	"github.com/they4kman/broadside/protocol"
	"github.com/they4kman/broadside/transport"
)

var simulateConfig = struct {
	ServerMap      string
	ClientMap      string
	ServerStrategy string
	ClientStrategy string
	Transport      transport.Kind
	Seed           int64
	Verbose        bool
}{
	ServerStrategy: "hunt",
	ClientStrategy: "hunt",
	Transport:      transport.TCP,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a match between two computer peers on this machine",
	Long: `simulate connects two computer-driven peers over a loopback
connection and plays one match between them. Both use the sample map
unless other maps are given.

	broadside simulate --transport ws --server-strategy random
`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configureLogging(simulateConfig.Verbose)

		seed := simulateConfig.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return simulate(seed)
	},
}

type simulatedPeer struct {
	config match.Config
	board  *game.Board
	out    bytes.Buffer
	result match.Result
	err    error
}

func newSimulatedPeer(role match.Role, mapPath, strategy string, seed int64) (*simulatedPeer, error) {
	if strategy == "human" {
		return nil, errors.New("simulate needs computer strategies")
	}

	board, err := loadSimulatedBoard(mapPath)
	if err != nil {
		return nil, err
	}

	director, err := newDirector(strategy, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	peer := &simulatedPeer{board: board}
	peer.config = match.NewConfig()
	peer.config.Role = role
	peer.config.Strategy = strategy
	peer.config.Seed = seed
	peer.config.Transport = simulateConfig.Transport
	peer.config.Director = director
	peer.config.Out = &peer.out
	return peer, nil
}

func loadSimulatedBoard(mapPath string) (*game.Board, error) {
	if mapPath == "" {
		return game.LoadBoard(strings.NewReader(game.SampleMap))
	}
	return game.LoadBoardFile(mapPath)
}

func simulate(seed int64) error {
	server, err := newSimulatedPeer(match.Server, simulateConfig.ServerMap, simulateConfig.ServerStrategy, seed)
	if err != nil {
		return err
	}
	client, err := newSimulatedPeer(match.Client, simulateConfig.ClientMap, simulateConfig.ClientStrategy, seed+1)
	if err != nil {
		return err
	}

	listener, err := transport.Listen(simulateConfig.Transport, "127.0.0.1:0")
	if err != nil {
		return err
	}
	defer listener.Close()

	log.WithFields(log.Fields{
		"transport": simulateConfig.Transport,
		"address":   listener.Addr(),
		"seed":      seed,
	}).Info("Starting simulated match")

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var stream protocol.Stream
		stream, server.err = listener.Accept()
		if server.err == nil {
			server.result, server.err = match.Play(server.config, server.board, stream)
		}
	}()

	go func() {
		defer wg.Done()
		var stream protocol.Stream
		stream, client.err = transport.Dial(simulateConfig.Transport, listener.Addr(), client.config.ReadTimeout)
		if client.err != nil {
			// unblock the server's Accept
			listener.Close()
			return
		}
		client.result, client.err = match.Play(client.config, client.board, stream)
	}()

	wg.Wait()

	for _, peer := range []*simulatedPeer{server, client} {
		fmt.Fprintf(os.Stdout, "=== %s (%s) ===\n", peer.config.Role, peer.config.Strategy)
		if peer.err != nil {
			fmt.Fprintf(os.Stdout, "error: %v\n", peer.err)
			continue
		}
		os.Stdout.Write(peer.out.Bytes())
	}

	if server.err != nil {
		return errors.Wrap(server.err, "server")
	}
	return errors.Wrap(client.err, "client")
}

func init() {
	flags := simulateCmd.Flags()

	flags.StringVar(&simulateConfig.ServerMap, "server-map", "", "Map for the listening peer (default: the sample map)")
	flags.StringVar(&simulateConfig.ClientMap, "client-map", "", "Map for the connecting peer (default: the sample map)")
	flags.Var(newStrategyValue(&simulateConfig.ServerStrategy), "server-strategy", "Strategy of the listening peer: random or hunt")
	flags.Var(newStrategyValue(&simulateConfig.ClientStrategy), "client-strategy", "Strategy of the connecting peer: random or hunt")
	flags.Var(transportValue{&simulateConfig.Transport}, "transport", "Connection type: tcp or ws")
	flags.Int64Var(&simulateConfig.Seed, "seed", 0, "Seed for both peers (0 picks one from the clock)")
	flags.BoolVarP(&simulateConfig.Verbose, "verbose", "v", false, "Log every message sent and received")

	rootCmd.AddCommand(simulateCmd)
}
