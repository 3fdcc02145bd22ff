// Package cutorder contains the CutOrder aggregate, a unit of work grouping
// the bundles cut from one batch of raw material. Its active flag is derived
// from the aggregate status of its bundles and only ever flips off.
package cutorder

import (
	"errors"
	"fmt"
	"time"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"
)

// ErrCutOrderIsNotConstructed is returned when a CutOrder instance was not
// created through NewCutOrder or RestoreCutOrder.
var ErrCutOrderIsNotConstructed = errors.New("CutOrder must be created via NewCutOrder or RestoreCutOrder")

// CutOrder is the aggregate root for a cut order. It owns its bundles for
// lifecycle purposes (a split creates a new bundle under the same order,
// never a new order), but bundle rows are loaded and persisted through their
// own repository; the order itself carries only the derived activity flag.
//
// The declared bundle count is the count requested at creation and may
// exceed the bundles actually present.
type CutOrder struct {
	id                  kernel.UUID
	code                string
	date                time.Time
	declaredBundleCount int
	active              bool

	isConstructed bool
}

// NewCutOrder creates an active cut order. Initial bundles are created
// alongside it by the use case layer.
func NewCutOrder(id kernel.UUID, code string, date time.Time, declaredBundleCount int) (*CutOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if declaredBundleCount < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("declaredBundleCount",
			fmt.Errorf("%d is not greater than 0", declaredBundleCount))
	}

	return &CutOrder{
		id:                  id,
		code:                code,
		date:                date,
		declaredBundleCount: declaredBundleCount,
		active:              true,
		isConstructed:       true,
	}, nil
}

// RestoreCutOrder reconstructs a cut order from persistence.
func RestoreCutOrder(id kernel.UUID, code string, date time.Time, declaredBundleCount int, active bool) (*CutOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	return &CutOrder{
		id:                  id,
		code:                code,
		date:                date,
		declaredBundleCount: declaredBundleCount,
		active:              active,
		isConstructed:       true,
	}, nil
}

// Validate ensures the order was built through a constructor.
func (o *CutOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrCutOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *CutOrder) ID() kernel.UUID {
	return o.id
}

// Code returns the order code.
func (o *CutOrder) Code() string {
	return o.code
}

// Date returns the order date.
func (o *CutOrder) Date() time.Time {
	return o.date
}

// DeclaredBundleCount returns the bundle count requested at creation.
func (o *CutOrder) DeclaredBundleCount() int {
	return o.declaredBundleCount
}

// Active reports whether any bundle work remains open on the order.
func (o *CutOrder) Active() bool {
	return o.active
}

// RefreshActive re-derives the activity flag from the statuses of the
// order's bundles: the order becomes inactive exactly when bundles exist and
// every one of them is Used. The flag never flips back to true here;
// reactivation is an explicit external operation outside this core.
//
// It returns true when the flag changed, so callers persist only real
// transitions.
func (o *CutOrder) RefreshActive(statuses []bundle.Status) bool {
	if !o.active || len(statuses) == 0 {
		return false
	}

	for _, s := range statuses {
		if s != bundle.Used {
			return false
		}
	}

	o.active = false
	return true
}
