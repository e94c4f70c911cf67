package shipment_test

import (
	"testing"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions(t *testing.T) {
	noInsurance, _ := shipment.NewInsurance(false, 0)

	t.Run("should create options with method only", func(t *testing.T) {
		options, err := shipment.NewOptions(shipment.MethodStandard, nil, noInsurance)

		require.NoError(t, err)
		require.NoError(t, options.Validate())
		assert.Equal(t, shipment.MethodStandard, options.Method())
		assert.Empty(t, options.SpecialHandling())
		assert.False(t, options.Insurance().Enabled())
	})

	t.Run("should collapse duplicate handling flags into a canonical set", func(t *testing.T) {
		options, err := shipment.NewOptions(shipment.MethodExpress,
			[]shipment.SpecialHandling{
				shipment.HandlingOversized,
				shipment.HandlingFragile,
				shipment.HandlingOversized,
				shipment.HandlingFragile,
			}, noInsurance)

		require.NoError(t, err)
		assert.Equal(t, []shipment.SpecialHandling{
			shipment.HandlingFragile,
			shipment.HandlingOversized,
		}, options.SpecialHandling())
	})

	t.Run("should reject invalid method", func(t *testing.T) {
		_, err := shipment.NewOptions(shipment.MethodUnknown, nil, noInsurance)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})

	t.Run("should reject invalid handling flag", func(t *testing.T) {
		_, err := shipment.NewOptions(shipment.MethodStandard,
			[]shipment.SpecialHandling{shipment.SpecialHandling(42)}, noInsurance)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

func TestNewInsurance(t *testing.T) {
	t.Run("should create enabled insurance", func(t *testing.T) {
		insurance, err := shipment.NewInsurance(true, 50000)

		require.NoError(t, err)
		assert.True(t, insurance.Enabled())
		assert.Equal(t, int64(50000), insurance.Amount())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := shipment.NewInsurance(true, -1)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsOutOfRangeError{}, err)
	})
}

func TestDeliveryMethodFromString(t *testing.T) {
	t.Run("should parse all methods", func(t *testing.T) {
		testCases := map[string]shipment.DeliveryMethod{
			"standard":  shipment.MethodStandard,
			"express":   shipment.MethodExpress,
			"overnight": shipment.MethodOvernight,
			"same_day":  shipment.MethodSameDay,
		}

		for input, expected := range testCases {
			method, err := shipment.DeliveryMethodFromString(input)

			require.NoError(t, err)
			assert.Equal(t, expected, method)
		}
	})

	t.Run("should reject unknown method", func(t *testing.T) {
		_, err := shipment.DeliveryMethodFromString("teleport")

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}
