package shipment_test

import (
	"strings"
	"testing"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	recipient, err := shipment.NewRecipient("Jane Smith", "+31 6 1234 5678")
	require.NoError(t, err)
	location, err := shipment.NewLocation("Keizersgracht 1", "Amsterdam", "1015 CD", "", "NL")
	require.NoError(t, err)

	t.Run("should create address", func(t *testing.T) {
		address, err := shipment.NewAddress(recipient, location, "ring twice", shipment.AbsenteeNeighbor)

		require.NoError(t, err)
		assert.NoError(t, address.Validate())
		assert.Equal(t, "Jane Smith", address.Recipient().Name())
		assert.Equal(t, "1015 CD", address.Location().ZipCode())
		assert.Equal(t, "ring twice", address.Instructions())
		assert.Equal(t, shipment.AbsenteeNeighbor, address.AbsenteeHandling())
	})

	t.Run("should accept instructions at the length limit", func(t *testing.T) {
		_, err := shipment.NewAddress(recipient, location, strings.Repeat("a", 500), shipment.AbsenteeRedelivery)

		require.NoError(t, err)
	})

	t.Run("should reject instructions over the length limit", func(t *testing.T) {
		_, err := shipment.NewAddress(recipient, location, strings.Repeat("a", 501), shipment.AbsenteeRedelivery)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject zero-value recipient", func(t *testing.T) {
		_, err := shipment.NewAddress(shipment.Recipient{}, location, "", shipment.AbsenteeRedelivery)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero-value location", func(t *testing.T) {
		_, err := shipment.NewAddress(recipient, shipment.Location{}, "", shipment.AbsenteeRedelivery)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject invalid absentee handling", func(t *testing.T) {
		_, err := shipment.NewAddress(recipient, location, "", shipment.AbsenteeHandling(42))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail validation for zero-value address", func(t *testing.T) {
		var address shipment.Address

		err := address.Validate()

		require.Error(t, err)
		assert.Equal(t, shipment.ErrAddressIsNotConstructed, err)
	})
}

func TestNewRecipient(t *testing.T) {
	t.Run("should require name", func(t *testing.T) {
		_, err := shipment.NewRecipient("  ", "+31 6 1234 5678")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require phone", func(t *testing.T) {
		_, err := shipment.NewRecipient("Jane Smith", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewLocation(t *testing.T) {
	t.Run("should require only the zip code", func(t *testing.T) {
		location, err := shipment.NewLocation("", "", "1015 CD", "", "")

		require.NoError(t, err)
		assert.Equal(t, "1015 CD", location.ZipCode())
	})

	t.Run("should reject a blank zip code", func(t *testing.T) {
		_, err := shipment.NewLocation("Keizersgracht 1", "Amsterdam", "  ", "", "NL")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestAbsenteeHandlingFromString(t *testing.T) {
	t.Run("should parse all policies", func(t *testing.T) {
		for str, want := range map[string]shipment.AbsenteeHandling{
			"redelivery":    shipment.AbsenteeRedelivery,
			"safe_place":    shipment.AbsenteeSafePlace,
			"neighbor":      shipment.AbsenteeNeighbor,
			"pickup_center": shipment.AbsenteePickupCenter,
		} {
			got, err := shipment.AbsenteeHandlingFromString(str)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, str, got.String())
		}
	})

	t.Run("should reject unknown policy", func(t *testing.T) {
		_, err := shipment.AbsenteeHandlingFromString("carrier_pigeon")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
