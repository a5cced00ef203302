package transport

import (
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/they4kman/broadside/protocol"
)

type Kind string

const (
	TCP       Kind = "tcp"
	WebSocket Kind = "ws"
)

var kinds = map[string]Kind{
	string(TCP):       TCP,
	string(WebSocket): WebSocket,
}

func ParseKind(s string) (Kind, error) {
	if kind, ok := kinds[s]; ok {
		return kind, nil
	}
	return "", errors.Errorf("invalid transport %q, expected tcp or ws", s)
}

func (kind *Kind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*kind = parsed
	return nil
}

// Listener accepts the single peer of a match
type Listener interface {
	Accept() (protocol.Stream, error)
	Addr() string
	Close() error
}

type tcpListener struct {
	listener net.Listener
}

func (listener *tcpListener) Accept() (protocol.Stream, error) {
	conn, err := listener.listener.Accept()
	if err != nil {
		return nil, errors.Wrap(err, "accepting peer")
	}
	return NewConnStream(conn), nil
}

func (listener *tcpListener) Addr() string {
	return listener.listener.Addr().String()
}

func (listener *tcpListener) Close() error {
	return listener.listener.Close()
}

type wsListener struct {
	*webSocketListener
}

func (listener wsListener) Accept() (protocol.Stream, error) {
	stream, err := listener.acceptStream()
	if err != nil {
		return nil, err
	}
	return stream, nil
}

func Listen(kind Kind, address string) (Listener, error) {
	switch kind {
	case TCP:
		listener, err := net.Listen("tcp", address)
		if err != nil {
			return nil, errors.Wrapf(err, "listening on %s", address)
		}
		return &tcpListener{listener: listener}, nil
	case WebSocket:
		listener, err := listenWebSocket(address)
		if err != nil {
			return nil, err
		}
		return wsListener{listener}, nil
	default:
		return nil, errors.Errorf("unknown transport %q", kind)
	}
}

func Dial(kind Kind, address string, timeout time.Duration) (protocol.Stream, error) {
	switch kind {
	case TCP:
		conn, err := net.DialTimeout("tcp", address, timeout)
		if err != nil {
			return nil, errors.Wrapf(err, "connecting to %s", address)
		}
		return NewConnStream(conn), nil
	case WebSocket:
		stream, err := dialWebSocket(address, timeout)
		if err != nil {
			return nil, err
		}
		return stream, nil
	default:
		return nil, errors.Errorf("unknown transport %q", kind)
	}
}
