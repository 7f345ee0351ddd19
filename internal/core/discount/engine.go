package discount

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/niksmo/swimstore/internal/core/domain"
)

const weekMillis = 7 * 24 * 60 * 60 * 1000

const bulkShare = 0.9

// A Strategy selects the weekly assignment algorithm.
type Strategy string

const (
	// StrategyPerProduct seeds one stream per (week, product) pair.
	// Order-independent and stable under catalog changes.
	StrategyPerProduct Strategy = "per-product"

	// StrategyBulk samples floor(n*0.9) products with replacement from
	// a single week-seeded stream. Kept for parity with the legacy
	// storefront; depends on catalog order and size.
	StrategyBulk Strategy = "bulk"
)

var (
	defaultTiers = []int{10, 15, 25}

	bulkTiers   = []int{25, 15, 10}
	bulkWeights = []float64{0.2, 0.5, 1}
)

// A Clock supplies wall-clock time. Callers must not cache the week
// epoch across calls; the engine reads the clock on every invocation.
type Clock func() time.Time

type Opt func(*Engine) error

func ClockOpt(c Clock) Opt {
	return func(e *Engine) error {
		if c == nil {
			return errors.New("clock is nil")
		}
		e.clock = c
		return nil
	}
}

func StrategyOpt(s Strategy) Opt {
	return func(e *Engine) error {
		switch s {
		case StrategyPerProduct, StrategyBulk:
			e.strategy = s
			return nil
		}
		return fmt.Errorf("unknown strategy %q", s)
	}
}

func TiersOpt(tiers []int) Opt {
	return func(e *Engine) error {
		if len(tiers) == 0 {
			return errors.New("tiers are empty")
		}
		for _, t := range tiers {
			if t <= 0 || t > 100 {
				return fmt.Errorf("tier %d: %w", t, domain.ErrInvalidDiscount)
			}
		}
		e.tiers = tiers
		return nil
	}
}

// WeightsOpt sets cumulative selection thresholds aligned with the
// configured tiers, e.g. [0.2, 0.5, 1].
func WeightsOpt(ws []float64) Opt {
	return func(e *Engine) error {
		if !sort.Float64sAreSorted(ws) {
			return errors.New("weights are not ascending")
		}
		for _, w := range ws {
			if w <= 0 || w > 1 {
				return fmt.Errorf("weight %v is out of (0, 1]", w)
			}
		}
		e.weights = ws
		return nil
	}
}

// An Engine deterministically assigns weekly discount percents to
// products of subscribed users. It is pure besides the clock read and
// safe for concurrent use.
type Engine struct {
	clock    Clock
	strategy Strategy
	tiers    []int
	weights  []float64
}

func New(opts ...Opt) (Engine, error) {
	const op = "discount.New"

	var e Engine
	for _, opt := range opts {
		if err := opt(&e); err != nil {
			return Engine{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	e.normalize()

	if len(e.weights) != 0 && len(e.weights) != len(e.tiers) {
		return Engine{}, fmt.Errorf(
			"%s: %d weights do not align with %d tiers",
			op, len(e.weights), len(e.tiers),
		)
	}
	return e, nil
}

func (e *Engine) normalize() {
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.strategy == "" {
		e.strategy = StrategyPerProduct
	}
	if len(e.tiers) == 0 {
		if e.strategy == StrategyBulk {
			e.tiers, e.weights = bulkTiers, bulkWeights
			return
		}
		e.tiers = defaultTiers
	}
}

// ComputeWeeklyDiscounts returns this week's assignment for the given
// catalog. A non-subscriber or an empty catalog always yields an empty
// assignment; the call never fails.
//
// Within one week bucket identical inputs produce identical results,
// regardless of process or machine.
func (e Engine) ComputeWeeklyDiscounts(
	ps []domain.Product, subscriptionActive bool,
) domain.DiscountAssignment {
	if !subscriptionActive || len(ps) == 0 {
		return domain.DiscountAssignment{}
	}

	week := WeekEpoch(e.clock())
	if e.strategy == StrategyBulk {
		return e.bulkAssign(week, ps)
	}
	return e.perProductAssign(week, ps)
}

// WeekEpoch buckets wall-clock time into 7-day slots counted from the
// unix epoch.
func WeekEpoch(t time.Time) int64 {
	return t.UnixMilli() / weekMillis
}

func (e Engine) perProductAssign(
	week int64, ps []domain.Product,
) domain.DiscountAssignment {
	m := make(domain.DiscountAssignment, len(ps))
	for _, p := range ps {
		r := newSeededRand(seedKey(week, p.ProductID))
		m[p.ProductID] = e.pickTier(r.Float64())
	}
	return m
}

func (e Engine) bulkAssign(
	week int64, ps []domain.Product,
) domain.DiscountAssignment {
	r := newSeededRand(strconv.FormatInt(week, 10))
	n := len(ps)
	count := int(float64(n) * bulkShare)

	m := make(domain.DiscountAssignment, count)
	for range count {
		i := int(r.Float64() * float64(n))
		if i >= n {
			i = n - 1
		}
		m[ps[i].ProductID] = e.pickTier(r.Float64())
	}
	return m
}

func (e Engine) pickTier(draw float64) int {
	if len(e.weights) != 0 {
		for i, w := range e.weights {
			if draw < w {
				return e.tiers[i]
			}
		}
		return e.tiers[len(e.tiers)-1]
	}

	i := int(draw * float64(len(e.tiers)))
	if i >= len(e.tiers) {
		i = len(e.tiers) - 1
	}
	return e.tiers[i]
}

func seedKey(week int64, productID string) string {
	return strconv.FormatInt(week, 10) + ":" + productID
}
