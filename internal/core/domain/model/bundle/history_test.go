package bundle_test

import (
	"testing"
	"time"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistoryEntry(t *testing.T) {
	now := time.Now().UTC()
	dest := kernel.NewUUID()

	t.Run("should create move entry with destination", func(t *testing.T) {
		entry, err := bundle.NewHistoryEntry(kernel.NewUUID(), bundle.ActionMove, &dest, "", now)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.Equal(t, bundle.ActionMove, entry.Action())
		require.NotNil(t, entry.DestinationID())
		assert.True(t, entry.DestinationID().IsEqual(dest))
		assert.Empty(t, entry.WorkOrderNumber())
		assert.Equal(t, now, entry.OccurredAt())
	})

	t.Run("should fail move entry without destination", func(t *testing.T) {
		_, err := bundle.NewHistoryEntry(kernel.NewUUID(), bundle.ActionMove, nil, "", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "destinationLocation")
	})

	t.Run("should create assign entry with work order", func(t *testing.T) {
		entry, err := bundle.NewHistoryEntry(kernel.NewUUID(), bundle.ActionAssign, nil, "WO-17", now)

		require.NoError(t, err)
		assert.Equal(t, "WO-17", entry.WorkOrderNumber())
		assert.Nil(t, entry.DestinationID())
	})

	t.Run("should fail assign entry without work order", func(t *testing.T) {
		_, err := bundle.NewHistoryEntry(kernel.NewUUID(), bundle.ActionAssign, nil, "", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "workOrderNumber")
	})

	t.Run("should fail non assign entry with work order", func(t *testing.T) {
		_, err := bundle.NewHistoryEntry(kernel.NewUUID(), bundle.ActionUse, nil, "WO-17", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "workOrderNumber")
	})

	t.Run("should create use entry without destination or work order", func(t *testing.T) {
		entry, err := bundle.NewHistoryEntry(kernel.NewUUID(), bundle.ActionUse, nil, "", now)

		require.NoError(t, err)
		assert.Nil(t, entry.DestinationID())
		assert.Empty(t, entry.WorkOrderNumber())
	})

	t.Run("should create split entry with shared location", func(t *testing.T) {
		entry, err := bundle.NewHistoryEntry(kernel.NewUUID(), bundle.ActionSplit, &dest, "", now)

		require.NoError(t, err)
		require.NotNil(t, entry.DestinationID())
		assert.True(t, entry.DestinationID().IsEqual(dest))
	})

	t.Run("should fail with invalid id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := bundle.NewHistoryEntry(invalidID, bundle.ActionUse, nil, "", now)

		require.Error(t, err)
	})

	t.Run("should fail with unknown action", func(t *testing.T) {
		_, err := bundle.NewHistoryEntry(kernel.NewUUID(), bundle.ActionUnknown, nil, "", now)

		require.Error(t, err)
	})

	t.Run("should fail with zero timestamp", func(t *testing.T) {
		_, err := bundle.NewHistoryEntry(kernel.NewUUID(), bundle.ActionUse, nil, "", time.Time{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "occurredAt")
	})

	t.Run("should copy the destination", func(t *testing.T) {
		local := kernel.NewUUID()
		entry, err := bundle.NewHistoryEntry(kernel.NewUUID(), bundle.ActionMove, &local, "", now)
		require.NoError(t, err)

		local = kernel.NewUUID()

		assert.False(t, entry.DestinationID().IsEqual(local))
	})
}

func TestHistoryEntry_Validate(t *testing.T) {
	t.Run("should fail for zero value entry", func(t *testing.T) {
		var entry bundle.HistoryEntry

		err := entry.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, bundle.ErrHistoryEntryIsNotConstructed)
	})
}
