package transport

import (
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// PlayPath is where the listening peer accepts WebSocket connections
const PlayPath = "/play"

// WebSocketStream carries one line per text message. A single goroutine reads
// the connection for the stream's whole life and hands messages over to
// ReadLine, so a read timeout leaves the connection untouched.
type WebSocketStream struct {
	conn *websocket.Conn

	reads chan webSocketRead
	done  chan struct{}
	once  sync.Once

	// first read error, returned by every later read
	readErr error
}

type webSocketRead struct {
	line string
	err  error
}

func NewWebSocketStream(conn *websocket.Conn) *WebSocketStream {
	stream := &WebSocketStream{
		conn:  conn,
		reads: make(chan webSocketRead),
		done:  make(chan struct{}),
	}
	go stream.readLoop()
	return stream
}

func (stream *WebSocketStream) readLoop() {
	defer close(stream.reads)

	for {
		_, data, err := stream.conn.ReadMessage()
		read := webSocketRead{line: strings.TrimRight(string(data), "\r\n"), err: err}

		select {
		case stream.reads <- read:
		case <-stream.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// ReadLine waits at most timeout (forever when zero) for the next text
// message. On timeout the error matches os.ErrDeadlineExceeded.
func (stream *WebSocketStream) ReadLine(timeout time.Duration) (string, error) {
	if stream.readErr != nil {
		return "", stream.readErr
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case read, ok := <-stream.reads:
		if !ok {
			stream.readErr = net.ErrClosed
			return "", stream.readErr
		}
		if read.err != nil {
			stream.readErr = read.err
			return "", read.err
		}
		return read.line, nil
	case <-expired:
		return "", errors.Wrapf(os.ErrDeadlineExceeded, "no message within %s", timeout)
	}
}

func (stream *WebSocketStream) WriteLine(line string) error {
	return stream.conn.WriteMessage(websocket.TextMessage, []byte(line+"\n"))
}

func (stream *WebSocketStream) Close() error {
	stream.once.Do(func() {
		close(stream.done)
	})

	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := stream.conn.WriteControl(websocket.CloseMessage, closing, time.Now().Add(time.Second)); err != nil {
		log.WithError(err).Debug("Sending close frame failed")
	}
	return stream.conn.Close()
}

type webSocketListener struct {
	listener net.Listener
	server   *http.Server
	upgrader websocket.Upgrader

	conns  chan *websocket.Conn
	served chan error
}

func listenWebSocket(address string) (*webSocketListener, error) {
	netListener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s", address)
	}

	listener := &webSocketListener{
		listener: netListener,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns:  make(chan *websocket.Conn, 1),
		served: make(chan error, 1),
	}

	router := mux.NewRouter()
	router.HandleFunc(PlayPath, listener.handlePlay).Methods("GET")
	listener.server = &http.Server{Handler: router}

	go func() {
		listener.served <- listener.server.Serve(netListener)
	}()

	return listener, nil
}

func (listener *webSocketListener) handlePlay(w http.ResponseWriter, r *http.Request) {
	if len(listener.conns) > 0 {
		http.Error(w, "a peer is already connected", http.StatusServiceUnavailable)
		return
	}

	conn, err := listener.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	select {
	case listener.conns <- conn:
	default:
		log.WithField("remote", r.RemoteAddr).Warn("Rejecting second peer")
		conn.Close()
	}
}

func (listener *webSocketListener) acceptStream() (*WebSocketStream, error) {
	select {
	case conn := <-listener.conns:
		return NewWebSocketStream(conn), nil
	case err := <-listener.served:
		return nil, errors.Wrap(err, "serving WebSocket endpoint")
	}
}

func (listener *webSocketListener) Addr() string {
	return listener.listener.Addr().String()
}

// Close stops accepting new peers; accepted connections stay open
func (listener *webSocketListener) Close() error {
	return listener.server.Close()
}

func dialWebSocket(address string, timeout time.Duration) (*WebSocketStream, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial("ws://"+address+PlayPath, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to ws://%s%s", address, PlayPath)
	}
	return NewWebSocketStream(conn), nil
}
