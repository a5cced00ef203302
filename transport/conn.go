package transport

import (
	"bufio"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ConnStream frames a byte stream connection into newline-terminated lines
type ConnStream struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer

	// part of a line read before a timeout interrupted it
	pending strings.Builder
}

func NewConnStream(conn net.Conn) *ConnStream {
	return &ConnStream{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}
}

func (stream *ConnStream) ReadLine(timeout time.Duration) (string, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := stream.conn.SetReadDeadline(deadline); err != nil {
		return "", errors.Wrap(err, "setting read deadline")
	}

	chunk, err := stream.reader.ReadString('\n')
	if err != nil {
		stream.pending.WriteString(chunk)
		return "", err
	}

	line := stream.pending.String() + chunk
	stream.pending.Reset()
	return strings.TrimRight(line, "\r\n"), nil
}

func (stream *ConnStream) WriteLine(line string) error {
	if _, err := stream.writer.WriteString(line + "\n"); err != nil {
		return err
	}
	return stream.writer.Flush()
}

func (stream *ConnStream) Close() error {
	return stream.conn.Close()
}
