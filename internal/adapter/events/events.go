package events

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var ErrTooFewOpts = errors.New("too few options")

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
	tlsCfg  *tls.Config
}

func ProducerTLSOpt(cfg *tls.Config) ProducerOpt {
	return func(opts *producerOpts) error {
		opts.tlsCfg = cfg
		return nil
	}
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kgoOpts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}
		if opts.tlsCfg != nil {
			kgoOpts = append(kgoOpts, kgo.DialTLSConfig(opts.tlsCfg))
		}

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

var _ port.EventsEmitter = (*ClientEventsProducer)(nil)

// A ClientEventsProducer publishes session diagnostics to the client
// events topic. The channel is best-effort: a failed emit is retried a
// couple of times and then dropped by the caller, user-facing operations
// never wait on it.
type ClientEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewClientEventsProducer(opts ...ProducerOpt) (ClientEventsProducer, error) {
	const op = "NewClientEventsProducer"

	if len(opts) < 2 {
		return ClientEventsProducer{}, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ClientEventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ClientEventsProducer{options.cl, options.encoder}, nil
}

func (p ClientEventsProducer) Close() {
	const op = "ClientEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ClientEventsProducer) EmitEvent(ctx context.Context, e domain.ClientEvent) error {
	const op = "ClientEventsProducer.EmitEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rc := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.LinearBackoff(200 * time.Millisecond),
	}
	err = retry.Do(ctx, rc, func() error {
		return p.cl.ProduceSync(ctx, r).FirstErr()
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p ClientEventsProducer) createRecord(e domain.ClientEvent) (*kgo.Record, error) {
	b, err := p.encoder.Encode(p.toSchema(e))
	if err != nil {
		return nil, err
	}
	return &kgo.Record{Key: []byte(e.UserID), Value: b}, nil
}

func (ClientEventsProducer) toSchema(e domain.ClientEvent) schema.ClientEventV1 {
	return schema.ClientEventV1{
		UserID:     e.UserID,
		Event:      e.Event,
		View:       e.View,
		RetailerID: e.RetailerID,
		OrderID:    e.OrderID,
		Total:      e.Total,
		UnixMilli:  e.UnixMilli,
	}
}
