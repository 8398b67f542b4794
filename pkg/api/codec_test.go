package api

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec_AmountsAreNumbers(t *testing.T) {
	codec := JSONCodec{}
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&Settlement{FromMemberId: "a", ToMemberId: "b", Amount: decimal.RequireFromString("1234.50")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":1234.5`)

	var in AddExpenseRequest
	// Quoted decimals are still accepted on input.
	require.NoError(t, codec.Unmarshal([]byte(`{"amount": 12.34, "exchangeRate": "25000", "isShared": true}`), &in))
	assert.True(t, in.Amount.Equal(decimal.RequireFromString("12.34")))
	require.NotNil(t, in.ExchangeRate)
	assert.True(t, in.ExchangeRate.Equal(decimal.NewFromInt(25000)))
	assert.True(t, in.IsShared)
}

func TestJSONCodec_RoundingGranularityIsMinorUnits(t *testing.T) {
	data, err := JSONCodec{}.Marshal(&Trip{Id: "t1", BaseCurrency: "VND", RoundingGranularity: 100000})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"roundingGranularity":100000`)

	var req CreateTripRequest
	require.NoError(t, JSONCodec{}.Unmarshal([]byte(`{"name": "x", "roundingGranularity": 500}`), &req))
	require.NotNil(t, req.RoundingGranularity)
	assert.Equal(t, int64(500), *req.RoundingGranularity)
}

func TestJSONCodec_EmptyBody(t *testing.T) {
	var req GetTripRequest
	assert.NoError(t, JSONCodec{}.Unmarshal(nil, &req))
	assert.Empty(t, req.TripId)
}

func TestJSONCodec_Malformed(t *testing.T) {
	var req GetTripRequest
	err := JSONCodec{}.Unmarshal([]byte(`{"tripId": 7}`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GetTripRequest")
}
