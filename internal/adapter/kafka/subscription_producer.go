package kafka

import (
	"context"

	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/niksmo/swimstore/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.SubscriptionProducer = (*SubscriptionProducer)(nil)

// A SubscriptionProducer emits subscription state changes keyed by
// username, feeding the status group table.
type SubscriptionProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewSubscriptionProducer(
	opts ...ProducerOpt,
) (SubscriptionProducer, error) {
	const op = "NewSubscriptionProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return SubscriptionProducer{}, opErr(err, op)
		}
	}

	opPrefix := "SubscriptionProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return SubscriptionProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p SubscriptionProducer) Close() {
	p.producer.close()
}

func (p SubscriptionProducer) ProduceSubscription(
	ctx context.Context, sub domain.Subscription,
) error {
	const op = "ProduceSubscription"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	s := subscriptionToSchemaV1(sub)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := &kgo.Record{Key: []byte(s.Username), Value: b}
	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}
