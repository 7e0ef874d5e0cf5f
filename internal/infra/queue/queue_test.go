package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePublisher struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (p *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return p.err
}

func TestPublishOutreach(t *testing.T) {
	pub := &fakePublisher{}
	p := &RabbitMQProducer{Ch: pub}

	job := OutreachJob{CampaignID: "c1", LeadID: "l1", TemplateID: "value-proposition-direct"}
	require.NoError(t, p.PublishOutreach(context.Background(), job))

	assert.Equal(t, ExchangeName, pub.exchange)
	assert.Equal(t, RoutingKey, pub.key)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.JSONEq(t, `{"campaign_id":"c1","lead_id":"l1","template_id":"value-proposition-direct"}`, string(pub.msg.Body))
}

func TestPublishOutreachError(t *testing.T) {
	p := &RabbitMQProducer{Ch: &fakePublisher{err: amqp.ErrClosed}}
	err := p.PublishOutreach(context.Background(), OutreachJob{})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

type ackRecorder struct {
	mu      sync.Mutex
	acks    []uint64
	nacks   []uint64
	requeue []bool
}

func (a *ackRecorder) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks = append(a.acks, tag)
	return nil
}

func (a *ackRecorder) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacks = append(a.nacks, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) ProcessOutreach(ctx context.Context, job OutreachJob) error {
	return m.Called(ctx, job).Error(0)
}

type fakeConsumer struct {
	msgs chan amqp.Delivery
}

func (c *fakeConsumer) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return c.msgs, nil
}

func delivery(ack amqp.Acknowledger, tag uint64, body any) amqp.Delivery {
	raw, ok := body.([]byte)
	if !ok {
		raw, _ = json.Marshal(body)
	}
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: raw}
}

func TestWorkerAcksAndDeadLetters(t *testing.T) {
	ok := OutreachJob{CampaignID: "c1", LeadID: "l1", TemplateID: "t"}
	failing := OutreachJob{CampaignID: "c1", LeadID: "l2", TemplateID: "t"}

	proc := new(mockProcessor)
	proc.On("ProcessOutreach", mock.Anything, ok).Return(nil)
	proc.On("ProcessOutreach", mock.Anything, failing).Return(errors.New("lead gone"))

	ack := &ackRecorder{}
	msgs := make(chan amqp.Delivery, 4)
	msgs <- delivery(ack, 1, ok)
	msgs <- delivery(ack, 2, failing)
	msgs <- delivery(ack, 3, []byte("{not json"))
	msgs <- delivery(ack, 4, OutreachJob{LeadID: "missing campaign"})
	close(msgs)

	w := &Worker{Channel: &fakeConsumer{msgs: msgs}, Processor: proc, logger: zap.NewNop()}
	require.NoError(t, w.Start(context.Background(), QueueName))

	assert.Equal(t, []uint64{1}, ack.acks)
	assert.Equal(t, []uint64{2, 3, 4}, ack.nacks)
	assert.Equal(t, []bool{false, false, false}, ack.requeue)
	proc.AssertNumberOfCalls(t, "ProcessOutreach", 2)
}

func TestWorkerStopsOnCancel(t *testing.T) {
	w := &Worker{Channel: &fakeConsumer{msgs: make(chan amqp.Delivery)}, Processor: new(mockProcessor), logger: zap.NewNop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx, QueueName) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
