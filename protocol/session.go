package protocol

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrRetriesExhausted = errors.New("communication failure: retries exhausted")

const (
	DefaultMaxRetries  = 3
	DefaultReadTimeout = 100 * time.Second
)

// Stream is a bidirectional, line-framed connection to the other peer
type Stream interface {
	// ReadLine blocks for at most timeout (forever when zero) and returns the
	// next line without its terminator
	ReadLine(timeout time.Duration) (string, error)
	// WriteLine writes line followed by a terminator and flushes it
	WriteLine(line string) error
	Close() error
}

type SessionConfig struct {
	ReadTimeout time.Duration
	MaxRetries  int
	Logger      *log.Entry
}

// Session exchanges messages with the other peer, one outstanding message per
// direction. Failed reads are recovered by resending the last message sent.
type Session struct {
	ID string

	stream      Stream
	readTimeout time.Duration
	maxRetries  int

	lastSent string
	hasSent  bool

	logger *log.Entry
}

func NewSession(stream Stream, config SessionConfig) *Session {
	session := &Session{
		ID:          uuid.New().String(),
		stream:      stream,
		readTimeout: config.ReadTimeout,
		maxRetries:  config.MaxRetries,
		logger:      config.Logger,
	}

	if session.readTimeout <= 0 {
		session.readTimeout = DefaultReadTimeout
	}
	if session.maxRetries <= 0 {
		session.maxRetries = DefaultMaxRetries
	}
	if session.logger == nil {
		session.logger = log.NewEntry(log.StandardLogger())
	}
	session.logger = session.logger.WithField("session", session.ID)

	return session
}

// LastSent returns the last line sent, and whether anything was sent yet
func (session *Session) LastSent() (string, bool) {
	return session.lastSent, session.hasSent
}

// Send writes the message and remembers it for resending. A failed write is
// only logged; the next receive notices the broken link and resends.
func (session *Session) Send(message Message) {
	line := message.Encode()
	session.lastSent = line
	session.hasSent = true

	session.logger.WithField("line", line).Debug("Sending")
	if err := session.stream.WriteLine(line); err != nil {
		session.logger.WithError(err).Warn("Send failed")
	}
}

// ReceiveWithRetry returns the next well-formed message. Every failed read
// (timeout, closed stream or malformed line) counts towards the retry limit
// and, if anything was sent before, triggers a resend of the last message.
// Once the limit is reached, ErrRetriesExhausted is returned and nothing more
// is sent.
func (session *Session) ReceiveWithRetry() (Message, error) {
	for failures := 1; ; failures++ {
		message, err := session.receive()
		if err == nil {
			return message, nil
		}

		entry := session.logger.WithError(err).WithField("attempt", failures)
		if failures >= session.maxRetries {
			entry.Error("Communication failure")
			return Message{}, errors.Wrapf(ErrRetriesExhausted, "after %d failed reads, last: %v", failures, err)
		}

		if !session.hasSent {
			entry.Warn("Read failed, nothing to resend")
			continue
		}

		entry.Warnf("Resending last message (%d/%d)", failures, session.maxRetries)
		if err := session.stream.WriteLine(session.lastSent); err != nil {
			entry.WithError(err).Warn("Resend failed")
		}
	}
}

func (session *Session) receive() (Message, error) {
	line, err := session.stream.ReadLine(session.readTimeout)
	if err != nil {
		return Message{}, errors.Wrap(err, "reading message")
	}

	session.logger.WithField("line", line).Debug("Received")
	return Parse(line)
}

func (session *Session) Close() error {
	return session.stream.Close()
}
