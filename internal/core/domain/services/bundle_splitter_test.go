package services_test

import (
	"testing"
	"time"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroupBundle(t *testing.T, base, sheets int) *bundle.Bundle {
	t.Helper()

	number, err := bundle.NewNumber(base)
	require.NoError(t, err)

	b, err := bundle.NewBundle(kernel.NewUUID(), kernel.NewUUID(), number, sheets, kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)
	return b
}

func validParams(sheets int) services.SplitParams {
	return services.SplitParams{
		NewBundleID:  kernel.NewUUID(),
		Sheets:       sheets,
		OriginalSSCC: "SSCC-A",
		OriginalLUID: "LUID-A",
		NewSSCC:      "SSCC-B",
		NewLUID:      "LUID-B",
		At:           time.Now().UTC(),
	}
}

func TestBundleSplitter_Split(t *testing.T) {
	splitter := services.NewBundleSplitter()

	t.Run("should conserve sheets across the split", func(t *testing.T) {
		original := newGroupBundle(t, 100, 100)

		sibling, err := splitter.Split(original, []*bundle.Bundle{original}, validParams(40))

		require.NoError(t, err)
		assert.Equal(t, 60, original.Sheets())
		assert.Equal(t, 40, sibling.Sheets())
	})

	t.Run("should promote original and allocate variant 2 on first split", func(t *testing.T) {
		original := newGroupBundle(t, 100, 100)

		sibling, err := splitter.Split(original, []*bundle.Bundle{original}, validParams(40))

		require.NoError(t, err)
		assert.Equal(t, 1, original.Number().Variant())
		assert.True(t, original.Number().IsEncoded())
		assert.Equal(t, 2, sibling.Number().Variant())

		base, _ := sibling.Number().Base()
		assert.Equal(t, 100, base)
	})

	t.Run("should allocate monotonically increasing variants", func(t *testing.T) {
		original := newGroupBundle(t, 100, 100)
		group := []*bundle.Bundle{original}

		for i := 0; i < 4; i++ {
			sibling, err := splitter.Split(original, group, validParams(10))
			require.NoError(t, err)
			group = append(group, sibling)
		}

		variants := make(map[int]bool)
		for _, b := range group {
			variants[b.Number().Variant()] = true
		}
		assert.Equal(t, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}, variants)
		assert.Equal(t, 60, original.Sheets())
	})

	t.Run("should skip past the highest variant after splitting a sibling", func(t *testing.T) {
		original := newGroupBundle(t, 100, 100)
		group := []*bundle.Bundle{original}

		first, err := splitter.Split(original, group, validParams(40))
		require.NoError(t, err)
		group = append(group, first)

		// Splitting the sibling, not the original, must still pick variant 3.
		second, err := splitter.Split(first, group, validParams(10))
		require.NoError(t, err)
		assert.Equal(t, 3, second.Number().Variant())
	})

	t.Run("should ignore group members with a different base", func(t *testing.T) {
		original := newGroupBundle(t, 100, 100)
		unrelated := newGroupBundle(t, 200, 50)
		promoted, err := splitter.Split(unrelated, []*bundle.Bundle{unrelated}, validParams(10))
		require.NoError(t, err)

		sibling, err := splitter.Split(original, []*bundle.Bundle{original, unrelated, promoted}, validParams(40))

		require.NoError(t, err)
		assert.Equal(t, 2, sibling.Number().Variant())
	})

	t.Run("should fail without touching the original when sheets are out of range", func(t *testing.T) {
		original := newGroupBundle(t, 100, 100)

		for _, sheets := range []int{0, -1, 100, 150} {
			_, err := splitter.Split(original, []*bundle.Bundle{original}, validParams(sheets))
			require.Error(t, err, "sheets=%d", sheets)
		}

		assert.Equal(t, 100, original.Sheets())
		assert.False(t, original.Number().IsEncoded())
		assert.Len(t, original.History(), 1)
	})

	t.Run("should fail without identifiers", func(t *testing.T) {
		original := newGroupBundle(t, 100, 100)

		params := validParams(40)
		params.OriginalSSCC = ""
		_, err := splitter.Split(original, []*bundle.Bundle{original}, params)
		require.Error(t, err)

		params = validParams(40)
		params.NewLUID = ""
		_, err = splitter.Split(original, []*bundle.Bundle{original}, params)
		require.Error(t, err)
	})

	t.Run("should fail without a base number", func(t *testing.T) {
		original, err := bundle.RestoreBundle(
			kernel.NewUUID(), kernel.NewUUID(), bundle.NumberFromStored(nil),
			100, bundle.Available, nil, "", "", time.Now().UTC(), nil, 1,
		)
		require.NoError(t, err)

		_, err = splitter.Split(original, []*bundle.Bundle{original}, validParams(40))

		require.Error(t, err)
		assert.ErrorIs(t, err, bundle.ErrBundleNumberNotResolvable)
	})

	t.Run("should record one split entry on each side", func(t *testing.T) {
		original := newGroupBundle(t, 100, 100)

		sibling, err := splitter.Split(original, []*bundle.Bundle{original}, validParams(40))

		require.NoError(t, err)
		originalHistory := original.History()
		require.Len(t, originalHistory, 2)
		assert.Equal(t, bundle.ActionSplit, originalHistory[1].Action())

		siblingHistory := sibling.History()
		require.Len(t, siblingHistory, 1)
		assert.Equal(t, bundle.ActionSplit, siblingHistory[0].Action())
		assert.Equal(t, originalHistory[1].OccurredAt(), siblingHistory[0].OccurredAt())
	})
}
