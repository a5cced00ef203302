package transport

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/broadside/game"
	"github.com/they4kman/broadside/protocol"
)

func connectPair(t *testing.T, kind Kind) (protocol.Stream, protocol.Stream) {
	t.Helper()

	listener, err := Listen(kind, "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	accepted := make(chan protocol.Stream, 1)
	go func() {
		stream, err := listener.Accept()
		if err != nil {
			accepted <- nil
			return
		}
		accepted <- stream
	}()

	client, err := Dial(kind, listener.Addr(), time.Second)
	require.NoError(t, err)

	server := <-accepted
	require.NotNil(t, server)
	return server, client
}

func TestStreamsExchangeLines(t *testing.T) {
	for _, kind := range []Kind{TCP, WebSocket} {
		t.Run(string(kind), func(t *testing.T) {
			server, client := connectPair(t, kind)
			defer server.Close()
			defer client.Close()

			require.NoError(t, client.WriteLine("start;C7"))
			line, err := server.ReadLine(time.Second)
			require.NoError(t, err)
			assert.Equal(t, "start;C7", line)

			require.NoError(t, server.WriteLine("trafiony zatopiony;J10"))
			line, err = client.ReadLine(time.Second)
			require.NoError(t, err)
			assert.Equal(t, "trafiony zatopiony;J10", line)
		})
	}
}

func TestStreamReadTimesOut(t *testing.T) {
	for _, kind := range []Kind{TCP, WebSocket} {
		t.Run(string(kind), func(t *testing.T) {
			server, client := connectPair(t, kind)
			defer server.Close()
			defer client.Close()

			start := time.Now()
			_, err := server.ReadLine(20 * time.Millisecond)
			require.Error(t, err)
			assert.Less(t, int64(time.Since(start)), int64(time.Second))

			assert.True(t, errors.Is(err, os.ErrDeadlineExceeded), "expected a timeout, got %v", err)
		})
	}
}

func TestStreamReadsAfterTimeout(t *testing.T) {
	for _, kind := range []Kind{TCP, WebSocket} {
		t.Run(string(kind), func(t *testing.T) {
			server, client := connectPair(t, kind)
			defer server.Close()
			defer client.Close()

			_, err := server.ReadLine(20 * time.Millisecond)
			require.Error(t, err)

			require.NoError(t, client.WriteLine("trafiony;A1"))
			line, err := server.ReadLine(time.Second)
			require.NoError(t, err)
			assert.Equal(t, "trafiony;A1", line)
		})
	}
}

func TestSessionWaitsOutSlowPeer(t *testing.T) {
	for _, kind := range []Kind{TCP, WebSocket} {
		t.Run(string(kind), func(t *testing.T) {
			server, client := connectPair(t, kind)
			defer client.Close()

			session := protocol.NewSession(server, protocol.SessionConfig{
				ReadTimeout: 50 * time.Millisecond,
				MaxRetries:  3,
			})
			defer session.Close()

			go func() {
				time.Sleep(80 * time.Millisecond)
				client.WriteLine("trafiony;A1")
			}()

			message, err := session.ReceiveWithRetry()
			require.NoError(t, err)
			assert.Equal(t, game.ShotHit, message.Outcome)
			require.NotNil(t, message.Target)
			assert.Equal(t, "A1", message.Target.String())
		})
	}
}

func TestConnStreamKeepsLineSplitByTimeout(t *testing.T) {
	left, right := net.Pipe()
	stream := NewConnStream(left)
	defer stream.Close()
	defer right.Close()

	go func() {
		right.Write([]byte("trafi"))
	}()
	_, err := stream.ReadLine(50 * time.Millisecond)
	require.Error(t, err)

	go func() {
		right.Write([]byte("ony;A1\r\n"))
	}()
	line, err := stream.ReadLine(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "trafiony;A1", line)
}

func TestConnStreamReportsClosedPeer(t *testing.T) {
	left, right := net.Pipe()
	stream := NewConnStream(left)
	defer stream.Close()

	right.Close()
	_, err := stream.ReadLine(time.Second)
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("ws")
	require.NoError(t, err)
	assert.Equal(t, WebSocket, kind)

	_, err = ParseKind("udp")
	assert.Error(t, err)
}
