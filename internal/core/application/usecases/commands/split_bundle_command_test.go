package commands_test

import (
	"testing"

	"bundletrack/internal/core/application/usecases/commands"
	"bundletrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitBundleCommand(t *testing.T) {
	bundleID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	t.Run("should create command", func(t *testing.T) {
		cmd, err := commands.NewSplitBundleCommand(bundleID, orderID, 40, "SSCC-A", "LUID-A", "SSCC-B", "LUID-B")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.BundleID().IsEqual(bundleID))
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Equal(t, 40, cmd.Sheets())
		assert.Equal(t, "SSCC-A", cmd.OriginalSSCC())
		assert.Equal(t, "LUID-B", cmd.NewLUID())
	})

	t.Run("should fail with non positive sheets", func(t *testing.T) {
		_, err := commands.NewSplitBundleCommand(bundleID, orderID, 0, "SA", "LA", "SB", "LB")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sheets")
	})

	t.Run("should fail with missing identifiers", func(t *testing.T) {
		cases := [][4]string{
			{"", "LA", "SB", "LB"},
			{"SA", "", "SB", "LB"},
			{"SA", "LA", "", "LB"},
			{"SA", "LA", "SB", ""},
		}

		for _, c := range cases {
			_, err := commands.NewSplitBundleCommand(bundleID, orderID, 40, c[0], c[1], c[2], c[3])
			require.Error(t, err)
		}
	})

	t.Run("should fail with invalid ids", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := commands.NewSplitBundleCommand(invalid, orderID, 40, "SA", "LA", "SB", "LB")
		require.Error(t, err)

		_, err = commands.NewSplitBundleCommand(bundleID, invalid, 40, "SA", "LA", "SB", "LB")
		require.Error(t, err)
	})
}

func TestSplitBundleCommand_Validate(t *testing.T) {
	t.Run("should fail for zero value command", func(t *testing.T) {
		var cmd commands.SplitBundleCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrSplitBundleCommandIsNotConstructed)
	})
}
