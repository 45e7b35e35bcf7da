package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	subject string
	data    []byte
}

func (r *recordingPublisher) Publish(subject string, data []byte) error {
	r.subject = subject
	r.data = data
	return nil
}

func TestNATSEmitter_EmitKeySet(t *testing.T) {
	pub := &recordingPublisher{}
	e := &natsEmitter{pub: pub, subjectPrefix: "kvgw"}

	require.NoError(t, e.EmitKeySet("user:1"))
	assert.Equal(t, "kvgw.keys.set", pub.subject)

	var event KeyEvent
	require.NoError(t, json.Unmarshal(pub.data, &event))
	assert.Equal(t, "key_set", event.Type)
	assert.Equal(t, "user:1", event.Key)
	assert.NotZero(t, event.Timestamp)
}

func TestNoopEmitter(t *testing.T) {
	var e Emitter = NoopEmitter{}
	assert.NoError(t, e.EmitKeySet("anything"))
	e.Close()
}
