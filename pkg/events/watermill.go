// Package events is the Postgres-backed pub/sub bus built on Watermill's SQL
// transport. Repositories publish inside their own transaction (outbox); the
// worker subscribes.
//
// Delivery: all subscribers sharing Options.ConsumerGroup split the stream,
// so each message is handled by one instance. Handlers must be idempotent;
// a failing handler is retried with exponential backoff and then Nacked.
//
// Trace context travels in message metadata in both directions.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/equiprent/pkg/logger"
)

const (
	maxRetries      = 3
	retryBaseDelay  = time.Second
	shutdownTimeout = 30 * time.Second
	forwarderTopic  = "_forwarder_queue"
)

// Options configures NewEventBus.
type Options struct {
	// ConsumerGroup shared by every subscriber of this process kind,
	// e.g. "equiprent-worker".
	ConsumerGroup string
	// Forwarder routes publishes through a durable queue drained by a
	// background daemon (StartForwarder). Use it in the process that writes.
	Forwarder bool
}

// EventBus publishes and subscribes over Postgres tables managed by Watermill.
// It borrows db; closing the bus leaves db open.
type EventBus struct {
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	db         *sql.DB
	log        logger.Logger
	wlog       watermill.LoggerAdapter
	opts       Options
	wg         sync.WaitGroup
}

// NewEventBus builds the subscriber on db. Publishing always goes through
// a caller's transaction (PublishTx). Schema tables are created on first use.
func NewEventBus(db *sql.DB, opts Options, log logger.Logger) (*EventBus, error) {
	if opts.ConsumerGroup == "" {
		return nil, errors.New("events: consumer group is required")
	}
	wlog := &slogAdapter{log: log}

	sub, err := watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    opts.ConsumerGroup,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	return &EventBus{
		subscriber: sub,
		db:         db,
		log:        log,
		wlog:       wlog,
		opts:       opts,
	}, nil
}

// StartForwarder runs the daemon that moves enveloped messages from the
// forwarder queue to their real topics. Call once, on a Forwarder bus.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.opts.Forwarder {
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	fwdSub, err := watermillsql.NewSubscriber(q.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    "forwarder-consumer",
	}, q.wlog)
	if err != nil {
		return fmt.Errorf("events: new forwarder subscriber: %w", err)
	}

	targetPub, err := watermillsql.NewPublisher(q.db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: true,
	}, q.wlog)
	if err != nil {
		_ = fwdSub.Close()
		return fmt.Errorf("events: new forwarder target publisher: %w", err)
	}

	fwd, err := forwarder.NewForwarder(fwdSub, targetPub, q.wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = targetPub.Close()
		_ = fwdSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started")
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: context cancelled waiting for forwarder: %w", ctx.Err())
	}
}

// NewTxPublisher returns a Publisher bound to tx, so the event commits or
// rolls back with the caller's rows. Schema creation is off; the tables
// exist once the bus has started.
func (q *EventBus) NewTxPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := watermillsql.NewPublisher(tx, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: false,
	}, q.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new tx publisher: %w", err)
	}
	if q.opts.Forwarder {
		return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic}), nil
	}
	return pub, nil
}

// PublishTx publishes msgs to topic inside tx, carrying ctx's trace.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	pub, err := q.NewTxPublisher(tx)
	if err != nil {
		return err
	}
	injectTrace(ctx, msgs)
	if err := pub.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe runs handler for each message on topic until ctx is done or the
// bus closes. handler sees a ctx carrying the publisher's trace.
//
// handler nil → Ack. handler error → retried 3× (1s, 2s, 4s), then Nack and
// the error is sent on the returned channel (buffered, 100). Drain it.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, 100)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := extractTrace(ctx, msg)
			if err := retryWithBackoff(msgCtx, msg, handler, maxRetries, retryBaseDelay, q.log); err != nil {
				msg.Nack()
				select {
				case errCh <- err:
				default:
					q.log.ErrorContext(msgCtx, "events: error channel full, dropping error", "error", err, "topic", topic)
				}
				continue
			}
			msg.Ack()
		}
	}()

	return errCh, nil
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler func(context.Context, *message.Message) error,
	maxRetries int,
	baseDelay time.Duration,
	log logger.Logger,
) error {
	delay := baseDelay
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"attempt", attempt,
			"max_retries", maxRetries,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("events: handler failed after %d retries: %w", maxRetries, err)
}

// Ping satisfies httpx.HealthChecker.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and forwarder, then waits up to 30 s for
// in-flight handlers.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers to complete")
	}
	return nil
}

// slogAdapter bridges logger.Logger to watermill.LoggerAdapter.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
