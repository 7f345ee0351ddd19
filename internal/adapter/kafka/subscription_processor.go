package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/swimstore/internal/core/port"
	"github.com/niksmo/swimstore/pkg/schema"
)

var _ port.SubscriptionProcessor = (*SubscriptionProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A subscriptionEventCodec used for serde [schema.SubscriptionEventV1]
type subscriptionEventCodec struct {
	serde Serde
}

func newSubscriptionEventCodec(s Serde) subscriptionEventCodec {
	return subscriptionEventCodec{s}
}

func (c subscriptionEventCodec) Encode(v any) ([]byte, error) {
	const op = "subscriptionEventCodec.Encode"
	if _, ok := v.(schema.SubscriptionEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c subscriptionEventCodec) Decode(data []byte) (any, error) {
	const op = "subscriptionEventCodec.Decode"
	var s schema.SubscriptionEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// An activeValue represents the subscription state stored per username.
type activeValue bool

// An activeValueCodec used for serde [activeValue]
type activeValueCodec struct{}

func (activeValueCodec) Encode(v any) ([]byte, error) {
	const op = "activeValueCodec.Encode"
	av, ok := v.(activeValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data := strconv.AppendBool([]byte(nil), bool(av))
	return data, nil
}

func (activeValueCodec) Decode(data []byte) (any, error) {
	const op = "activeValueCodec.Decode"
	av, err := strconv.ParseBool(string(data))
	if err != nil {
		return nil, opErr(err, op)
	}
	return activeValue(av), nil
}

// A SubscriptionProcessor folds subscription events from the stream
// topic into the per-username status group table.
type SubscriptionProcessor struct {
	opPrefix string
	proc     processor
}

func NewSubscriptionProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	subscriptionSerde Serde,
) (*SubscriptionProcessor, error) {
	const op = "NewSubscriptionProc"

	var p SubscriptionProcessor
	p.opPrefix = "SubscriptionProcessor"

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newSubscriptionEventCodec(subscriptionSerde),
			p.processFn,
		),
		goka.Persist(activeValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNoLogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return &p, nil
}

func (p *SubscriptionProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *SubscriptionProcessor) Close() {
	p.proc.close()
}

func (p *SubscriptionProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.SubscriptionEventV1)
	v := activeValue(event.Active)
	ctx.SetValue(v)
	log.Info(
		"set subscription state",
		"username", event.Username,
		"active", v,
	)
}
