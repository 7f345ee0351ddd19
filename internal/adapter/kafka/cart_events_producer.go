package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/niksmo/swimstore/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.CartEventsProducer = (*CartEventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A CartEventsProducer emits one event per cart add with the locked-in
// price attached.
type CartEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewCartEventsProducer(
	opts ...ProducerOpt,
) (CartEventsProducer, error) {
	const op = "NewCartEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CartEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "CartEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return CartEventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p CartEventsProducer) Close() {
	p.producer.close()
}

func (p CartEventsProducer) ProduceCartEvent(
	ctx context.Context, item domain.CartItem,
) error {
	const op = "ProduceCartEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(item)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p CartEventsProducer) createRecord(
	item domain.CartItem,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := cartItemToSchemaV1(item)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.Username), Value: b}, nil
}
