package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

const keySetSubjectSuffix = ".keys.set"

// KeyEvent is published after every successful write so downstream consumers
// (cache warmers, audit sinks) can follow the store without polling it.
type KeyEvent struct {
	Type      string `json:"type"`
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

type Emitter interface {
	EmitKeySet(key string) error
	Close()
}

// publisher is the one method of *nats.Conn the emitter needs; kept narrow
// so tests can substitute a recorder.
type publisher interface {
	Publish(subject string, data []byte) error
}

type natsEmitter struct {
	pub           publisher
	closer        func()
	subjectPrefix string
}

func NewNATSEmitter(conn *nats.Conn, subjectPrefix string) Emitter {
	return &natsEmitter{
		pub:           conn,
		closer:        conn.Close,
		subjectPrefix: subjectPrefix,
	}
}

func (e *natsEmitter) EmitKeySet(key string) error {
	data, err := json.Marshal(KeyEvent{
		Type:      "key_set",
		Key:       key,
		Timestamp: time.Now().UTC().Unix(),
	})
	if err != nil {
		return err
	}
	return e.pub.Publish(e.subjectPrefix+keySetSubjectSuffix, data)
}

func (e *natsEmitter) Close() {
	if e.closer != nil {
		e.closer()
	}
}

// NoopEmitter is used when no NATS URL is configured.
type NoopEmitter struct{}

func (NoopEmitter) EmitKeySet(string) error { return nil }
func (NoopEmitter) Close()                  {}
