package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// OutreachProcessor handles one decoded job. A returned error
// dead-letters the message.
type OutreachProcessor interface {
	ProcessOutreach(ctx context.Context, job OutreachJob) error
}

type consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel   consumer
	Processor OutreachProcessor
	logger    *zap.Logger
}

func NewWorker(ch *amqp.Channel, processor OutreachProcessor, logger *zap.Logger) *Worker {
	return &Worker{
		Channel:   ch,
		Processor: processor,
		logger:    logger.Named("outreach-worker"),
	}
}

// Start consumes until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register RabbitMQ consumer: %w", err)
	}

	w.logger.Info("worker waiting for jobs", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var job OutreachJob
	if err := json.Unmarshal(d.Body, &job); err != nil || !job.Valid() {
		w.logger.Warn("malformed outreach job, dead-lettering", zap.ByteString("body", d.Body), zap.Error(err))
		d.Nack(false, false)
		return
	}

	if err := w.Processor.ProcessOutreach(ctx, job); err != nil {
		w.logger.Error("outreach job failed",
			zap.String("campaign_id", job.CampaignID),
			zap.String("lead_id", job.LeadID),
			zap.Error(err),
		)
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}
