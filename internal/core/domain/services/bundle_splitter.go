package services

import (
	"time"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"
)

// SplitParams carries the caller-supplied inputs of one split: how many
// sheets move into the new sibling and the external identifiers both
// resulting bundles must carry afterwards.
type SplitParams struct {
	NewBundleID  kernel.UUID
	Sheets       int
	OriginalSSCC string
	OriginalLUID string
	NewSSCC      string
	NewLUID      string
	At           time.Time
}

// BundleSplitter is the domain service implementing the split algorithm:
// resolve the original's base number, scan the sibling group for the highest
// variant in use, allocate the next variant, promote a still-plain original
// into the encoded form, reduce the original, and build the sibling.
//
// Variant allocation over the loaded group is what makes variants
// monotonically increasing and collision-free after any number of prior
// splits. Two concurrent splits of the same group can still compute the same
// next variant from stale reads; the conditional update on the original's
// version in the persistence layer ensures only one of them commits.
type BundleSplitter struct{}

// NewBundleSplitter creates a BundleSplitter.
func NewBundleSplitter() BundleSplitter {
	return BundleSplitter{}
}

// Split divides the original bundle in place and returns the new sibling.
// The group must contain every bundle of the owning order; bundles with a
// different base number are ignored. All inputs are validated before the
// original is touched, so a failed split leaves it unmodified.
func (s BundleSplitter) Split(
	original *bundle.Bundle,
	group []*bundle.Bundle,
	params SplitParams,
) (*bundle.Bundle, error) {
	if err := original.Validate(); err != nil {
		return nil, err
	}
	if err := params.NewBundleID.Validate(); err != nil {
		return nil, err
	}
	if params.Sheets <= 0 || params.Sheets >= original.Sheets() {
		return nil, errs.NewValueIsOutOfRangeError("sheets", params.Sheets, 1, original.Sheets()-1)
	}
	if params.OriginalSSCC == "" || params.NewSSCC == "" {
		return nil, errs.NewValueIsRequiredError("sscc")
	}
	if params.OriginalLUID == "" || params.NewLUID == "" {
		return nil, errs.NewValueIsRequiredError("luid")
	}

	base, ok := original.Number().Base()
	if !ok {
		return nil, bundle.ErrBundleNumberNotResolvable
	}

	nextVariant := s.nextVariant(base, group)

	siblingNumber, err := original.Number().Sibling(nextVariant)
	if err != nil {
		return nil, err
	}

	if err = original.SplitOff(params.Sheets, params.OriginalSSCC, params.OriginalLUID, params.At); err != nil {
		return nil, err
	}

	sibling, err := bundle.SplitSibling(
		params.NewBundleID,
		original,
		siblingNumber,
		params.Sheets,
		params.NewSSCC,
		params.NewLUID,
		params.At,
	)
	if err != nil {
		return nil, err
	}

	return sibling, nil
}

// nextVariant returns max(variant over the sibling group, default 1) + 1.
// The default covers a group whose only member is the still-unpromoted
// original, which holds variant 1 implicitly.
func (s BundleSplitter) nextVariant(base int, group []*bundle.Bundle) int {
	maxVariant := 1
	for _, b := range group {
		memberBase, ok := b.Number().Base()
		if !ok || memberBase != base {
			continue
		}
		if v := b.Number().Variant(); v > maxVariant {
			maxVariant = v
		}
	}
	return maxVariant + 1
}
