package commands

import (
	"errors"
	"fmt"
	"time"

	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"
	"bundletrack/internal/pkg/guard"
)

var ErrCreateCutOrderCommandIsNotConstructed = errors.New(
	"CreateCutOrderCommand must be created via NewCreateCutOrderCommand constructor",
)

// BundleSpec describes one initial bundle of a new cut order: its
// human-meaningful number and its starting sheet count.
type BundleSpec struct {
	Number int
	Sheets int
}

// CreateCutOrderCommand represents a request to register a cut order
// together with its initial bundles at a starting location. Each initial
// bundle carries variant 1 implicitly and gets one synthetic move history
// entry recording where it starts.
type CreateCutOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	code                string
	date                time.Time
	declaredBundleCount int
	locationCode        string
	bundles             []BundleSpec

	guard guard.ConstructorGuard
}

// NewCreateCutOrderCommand creates a command to register a new cut order.
// The declared bundle count is the count requested at creation and may
// exceed the bundles actually supplied, but never be below it.
func NewCreateCutOrderCommand(
	orderID kernel.UUID,
	code string,
	date time.Time,
	declaredBundleCount int,
	locationCode string,
	bundles []BundleSpec,
) (CreateCutOrderCommand, error) {
	cmd := CreateCutOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
		cmd.setDate(date),
		cmd.setLocationCode(locationCode),
		cmd.setBundles(bundles),
		cmd.setDeclaredBundleCount(declaredBundleCount, len(bundles)),
	); err != nil {
		return CreateCutOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCutOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateCutOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateCutOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Code returns the order code.
func (c CreateCutOrderCommand) Code() string {
	return c.code
}

// Date returns the order date.
func (c CreateCutOrderCommand) Date() time.Time {
	return c.date
}

// DeclaredBundleCount returns the bundle count requested at creation.
func (c CreateCutOrderCommand) DeclaredBundleCount() int {
	return c.declaredBundleCount
}

// LocationCode returns the starting site code for all initial bundles.
func (c CreateCutOrderCommand) LocationCode() string {
	return c.locationCode
}

// Bundles returns the initial bundle specifications.
func (c CreateCutOrderCommand) Bundles() []BundleSpec {
	return append([]BundleSpec(nil), c.bundles...)
}

func (c *CreateCutOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateCutOrderCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *CreateCutOrderCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	c.date = date
	return nil
}

func (c *CreateCutOrderCommand) setLocationCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("locationCode")
	}
	c.locationCode = code
	return nil
}

func (c *CreateCutOrderCommand) setBundles(bundles []BundleSpec) error {
	if len(bundles) == 0 {
		return errs.NewValueIsRequiredError("bundles")
	}
	for i, spec := range bundles {
		if spec.Number < 1 {
			return errs.NewValueIsInvalidErrorWithCause("bundle number",
				fmt.Errorf("%d at index %d is not greater than 0", spec.Number, i))
		}
		if spec.Sheets < 1 {
			return errs.NewValueIsInvalidErrorWithCause("sheets",
				fmt.Errorf("%d at index %d is not greater than 0", spec.Sheets, i))
		}
	}
	c.bundles = append([]BundleSpec(nil), bundles...)
	return nil
}

func (c *CreateCutOrderCommand) setDeclaredBundleCount(declared, actual int) error {
	if declared < actual {
		return errs.NewValueIsInvalidErrorWithCause("declaredBundleCount",
			fmt.Errorf("%d is less than the %d bundles supplied", declared, actual))
	}
	c.declaredBundleCount = declared
	return nil
}
