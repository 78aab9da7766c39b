package queue_test

import (
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/queue"
)

type recorder struct {
	topic string
	msgs  []*message.Message
}

func (r *recorder) Publish(topic string, msgs ...*message.Message) error {
	r.topic = topic
	r.msgs = append(r.msgs, msgs...)

	return nil
}

func TestNewEventID_Sortable(t *testing.T) {
	a := queue.NewEventID()

	time.Sleep(2 * time.Millisecond)

	b := queue.NewEventID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}

func TestPublishFileIngested(t *testing.T) {
	rec := &recorder{}
	payload := queue.FileIngestedPayload{
		FileID: 1,
		Name:   "people.csv",
		Path:   "uploads/people.csv",
		Size:   42,
		Columns: []queue.ColumnRef{
			{Index: 0, Name: "name", Type: "text"},
			{Index: 1, Name: "age", Type: "number"},
		},
	}

	require.NoError(t, queue.PublishFileIngested(rec, payload, queue.WithProducer("csvvault"), queue.WithTraceID("t-1")))
	require.Len(t, rec.msgs, 1)
	assert.Equal(t, queue.TopicFileIngested, rec.topic)

	msg := rec.msgs[0]
	assert.Equal(t, "csvvault", msg.Metadata.Get("producer"))
	assert.Equal(t, "t-1", msg.Metadata.Get("trace_id"))
	assert.Equal(t, queue.PayloadVersionV1, msg.Metadata.Get("version"))

	env, err := queue.ParseFileIngested(msg)
	require.NoError(t, err)
	assert.Equal(t, msg.UUID, env.Header.ID)
	assert.Equal(t, queue.TopicFileIngested, env.Header.Topic)
	assert.Equal(t, payload, env.Payload)
}

func TestParse_Invalid(t *testing.T) {
	_, err := queue.ParseFileArchived(message.NewMessage("x", []byte("{not json")))
	require.Error(t, err)
}

func TestParse_TopicMismatch(t *testing.T) {
	msg, err := queue.NewWatermillMessage(queue.TopicFileDeleted, queue.FileDeletedPayload{FileID: 3})
	require.NoError(t, err)
	assert.Equal(t, queue.TopicFileDeleted, msg.Metadata.Get("topic"))
	assert.Empty(t, msg.Metadata.Get("producer"))

	_, err = queue.ParseFileIngested(msg)
	require.ErrorIs(t, err, queue.ErrTopicMismatch)

	env, err := queue.ParseFileDeleted(msg)
	require.NoError(t, err)
	assert.EqualValues(t, 3, env.Payload.FileID)
}
