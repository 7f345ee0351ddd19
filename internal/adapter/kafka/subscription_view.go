package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/swimstore/internal/core/port"
)

var _ port.SubscriptionChecker = (*SubscriptionView)(nil)

// A SubscriptionView serves per-username subscription state from the
// status group table. A missing record reads as inactive.
type SubscriptionView struct {
	gv *goka.View
}

func NewSubscriptionView(
	seedBrokers []string, groupTable string,
) (SubscriptionView, error) {
	const op = "NewSubscriptionView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		activeValueCodec{},
	)
	if err != nil {
		return SubscriptionView{}, opErr(err, op)
	}

	return SubscriptionView{gv}, nil
}

func (v SubscriptionView) Run(ctx context.Context) {
	const op = "SubscriptionView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v SubscriptionView) Active(
	ctx context.Context, username string,
) (bool, error) {
	const op = "SubscriptionView.Active"

	if err := ctx.Err(); err != nil {
		return false, opErr(err, op)
	}

	value, err := v.gv.Get(username)
	if err != nil {
		return false, opErr(err, op)
	}

	if value == nil {
		return false, nil
	}

	av, ok := value.(activeValue)
	if !ok {
		return false, opErr(ErrInvalidValueType, op)
	}
	return bool(av), nil
}
