package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCents_JSON(t *testing.T) {
	t.Run("MarshalsMajorUnits", func(t *testing.T) {
		for cents, want := range map[Cents]string{5000: "50", 1999: "19.99", 5: "0.05", -250: "-2.5", 0: "0"} {
			out, err := json.Marshal(cents)
			require.NoError(t, err)
			assert.Equal(t, want, string(out))
		}
	})

	t.Run("UnmarshalsMajorUnits", func(t *testing.T) {
		var board struct {
			PricePerDay *Cents `json:"price_per_day"`
			SalePrice   *Cents `json:"sale_price"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"price_per_day":50,"sale_price":349.99}`), &board))
		require.NotNil(t, board.PricePerDay)
		assert.Equal(t, Cents(5000), *board.PricePerDay)
		assert.Equal(t, Cents(34999), *board.SalePrice)
	})

	t.Run("RejectsFractionalCents", func(t *testing.T) {
		var c Cents
		assert.Error(t, json.Unmarshal([]byte(`12.345`), &c))
	})

	t.Run("RejectsStrings", func(t *testing.T) {
		var c Cents
		assert.Error(t, json.Unmarshal([]byte(`"50"`), &c))
	})

	t.Run("NullLeavesZero", func(t *testing.T) {
		var c Cents
		require.NoError(t, json.Unmarshal([]byte(`null`), &c))
		assert.Equal(t, Cents(0), c)
	})
}

func TestRental_TotalAmountWireName(t *testing.T) {
	out, err := json.Marshal(Rental{TotalAmountCents: 15000})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(out, &body))
	assert.Equal(t, float64(150), body["total_amount"])
	assert.NotContains(t, body, "total_amount_cents")
}
