package bundle

import (
	"fmt"

	"bundletrack/internal/pkg/errs"
)

// variantMax bounds the variant component of an encoded number. The packed
// form reserves three decimal digits for the variant.
const variantMax = 999

// Number is the bundle number codec. It packs a (base, variant) pair into a
// single persisted integer so that split siblings can be grouped without a
// separate relation:
//
//	encoded = base*1000 + variant, variant in [1, 999]
//
// An un-split bundle keeps its original small number (stored value < 1000)
// and is only promoted into the encoded form on first split. A bundle whose
// stored value is absent has no base number and can never be split or
// grouped.
//
// Number is an immutable value object; the zero value represents an absent
// number.
type Number struct {
	value *int
}

// NumberFromStored wraps a persisted number column value, which may be nil.
func NumberFromStored(v *int) Number {
	if v == nil {
		return Number{}
	}
	value := *v
	return Number{value: &value}
}

// NewNumber creates a plain (never-split) bundle number. A plain number must
// stay below the encoded range so it cannot be mistaken for a packed
// (base, variant) pair.
func NewNumber(base int) (Number, error) {
	if base < 1 || base > variantMax {
		return Number{}, errs.NewValueIsOutOfRangeError("bundle number", base, 1, variantMax)
	}
	value := base
	return Number{value: &value}, nil
}

// EncodeNumber creates an encoded number from a base and a variant.
func EncodeNumber(base, variant int) (Number, error) {
	if base < 1 {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("bundle number base",
			fmt.Errorf("%d is not greater than 0", base))
	}
	if variant < 1 || variant > variantMax {
		return Number{}, errs.NewValueIsOutOfRangeError("variant", variant, 1, variantMax)
	}
	value := base*1000 + variant
	return Number{value: &value}, nil
}

// Stored returns the persisted form of the number, nil when absent.
func (n Number) Stored() *int {
	if n.value == nil {
		return nil
	}
	value := *n.value
	return &value
}

// HasBase reports whether the number carries a resolvable base, i.e. the
// bundle can be split and grouped with siblings.
func (n Number) HasBase() bool {
	return n.value != nil
}

// Base decodes the base component. The second return value is false when the
// stored number is absent.
func (n Number) Base() (int, bool) {
	if n.value == nil {
		return 0, false
	}
	if *n.value >= 1000 {
		return *n.value / 1000, true
	}
	return *n.value, true
}

// Variant decodes the variant component. An absent number has variant 0; a
// plain number decodes as variant 1. A zero remainder on an encoded value is
// treated as variant 1, guarding against a base that is itself a multiple of
// 1000 colliding with an un-split encoding.
func (n Number) Variant() int {
	if n.value == nil {
		return 0
	}
	if *n.value < 1000 {
		return 1
	}
	variant := *n.value % 1000
	if variant == 0 {
		return 1
	}
	return variant
}

// IsEncoded reports whether the stored value is already in the packed form.
func (n Number) IsEncoded() bool {
	return n.value != nil && *n.value >= 1000
}

// Promote rewrites a plain number into the encoded form with variant 1.
// This is the one-time promotion performed on the first split of a bundle so
// the sibling group becomes addressable by base. Promoting an encoded number
// returns it unchanged.
func (n Number) Promote() (Number, error) {
	base, ok := n.Base()
	if !ok {
		return Number{}, errs.NewValueIsRequiredError("bundle number")
	}
	if n.IsEncoded() {
		return n, nil
	}
	return EncodeNumber(base, 1)
}

// Sibling produces the encoded number of a split sibling with the given
// variant, sharing this number's base.
func (n Number) Sibling(variant int) (Number, error) {
	base, ok := n.Base()
	if !ok {
		return Number{}, errs.NewValueIsRequiredError("bundle number")
	}
	return EncodeNumber(base, variant)
}

// IsEqual reports whether two numbers have the same stored form.
func (n Number) IsEqual(other Number) bool {
	if n.value == nil || other.value == nil {
		return n.value == nil && other.value == nil
	}
	return *n.value == *other.value
}

// String renders the decoded form for logs and diagnostics.
func (n Number) String() string {
	if n.value == nil {
		return "none"
	}
	base, _ := n.Base()
	return fmt.Sprintf("%d-%d", base, n.Variant())
}
