package messagequeue

import (
	"context"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared  []string
	published []amqp.Publishing
	keys      []string
}

func (f *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestPublishJSONDeclaresQueueOnce(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitMQPublisher{channel: ch, declared: map[string]bool{}}

	ctx := context.Background()
	require.NoError(t, PublishJSON(ctx, p, "alerts.broadcast", map[string]string{"alertId": "a1"}))
	require.NoError(t, PublishJSON(ctx, p, "alerts.broadcast", map[string]string{"alertId": "a2"}))

	assert.Equal(t, []string{"alerts.broadcast"}, ch.declared)
	assert.Equal(t, []string{"alerts.broadcast", "alerts.broadcast"}, ch.keys)
	assert.JSONEq(t, `{"alertId":"a1"}`, string(ch.published[0].Body))
	assert.Equal(t, uint8(amqp.Persistent), ch.published[0].DeliveryMode)
	assert.Equal(t, "application/json", ch.published[0].ContentType)
}

func TestPublishRespectsCancelledContext(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitMQPublisher{channel: ch, declared: map[string]bool{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, "q", []byte("{}")), context.Canceled)
	assert.Empty(t, ch.published)
}
