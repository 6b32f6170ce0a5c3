package animation

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/ringmotion/curve"
	"github.com/lixenwraith/ringmotion/parameter"
	"github.com/lixenwraith/ringmotion/trajectory"
)

// ErrInvalidOptions reports timing options outside their domain
// Wraps trajectory.ErrInvalidConfiguration so one errors.Is check covers both
var ErrInvalidOptions = fmt.Errorf("%w: options", trajectory.ErrInvalidConfiguration)

// Order selects how start delays grow across elements
type Order uint8

const (
	// Natural delays element i by i units; the first element moves first
	Natural Order = iota
	// Reversed delays element i by count-i units; the last element moves first
	Reversed
)

func (o Order) String() string {
	switch o {
	case Natural:
		return "natural"
	case Reversed:
		return "reversed"
	default:
		return fmt.Sprintf("order(%d)", uint8(o))
	}
}

// Options controls timing and direction of one animate call
type Options struct {
	Mode      trajectory.Mode
	Order     Order
	Duration  time.Duration // > 0
	DelayUnit time.Duration // >= 0
	Curve     curve.Curve
}

// DefaultOptions returns the instance defaults used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Mode:      trajectory.Enter,
		Order:     Natural,
		Duration:  parameter.DefaultDuration,
		DelayUnit: parameter.DefaultDelayUnit,
		Curve:     curve.MustLookup(parameter.DefaultCurveName),
	}
}

// Validate checks every option against its domain
func (o Options) Validate() error {
	var errs []error
	if o.Mode > trajectory.Exit {
		errs = append(errs, fmt.Errorf("unknown mode %v", o.Mode))
	}
	if o.Order > Reversed {
		errs = append(errs, fmt.Errorf("unknown order %v", o.Order))
	}
	if o.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration %v must be positive", o.Duration))
	}
	if o.DelayUnit < 0 {
		errs = append(errs, fmt.Errorf("delay unit %v must not be negative", o.DelayUnit))
	}
	if !o.Curve.Valid() {
		errs = append(errs, errors.New("timing curve not set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
	}
	return nil
}

// Overrides is a partial Options; nil fields fall back to the defaults
type Overrides struct {
	Mode      *trajectory.Mode
	Order     *Order
	Duration  *time.Duration
	DelayUnit *time.Duration
	Curve     *curve.Curve
}

// Merge returns o with every non-nil override applied
// o itself is never modified
func (o Options) Merge(ov Overrides) Options {
	if ov.Mode != nil {
		o.Mode = *ov.Mode
	}
	if ov.Order != nil {
		o.Order = *ov.Order
	}
	if ov.Duration != nil {
		o.Duration = *ov.Duration
	}
	if ov.DelayUnit != nil {
		o.DelayUnit = *ov.DelayUnit
	}
	if ov.Curve != nil {
		o.Curve = *ov.Curve
	}
	return o
}

// Ptr returns a pointer to v, for building Overrides inline
func Ptr[T any](v T) *T {
	return &v
}

// Delay returns the start delay of element index out of count
func Delay(index, count int, order Order, unit time.Duration) time.Duration {
	n := index
	if order == Reversed {
		n = count - index
	}
	return unit * time.Duration(n)
}
