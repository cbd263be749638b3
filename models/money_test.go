package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmeticIsExact(t *testing.T) {
	price, err := MoneyFromString("5.50")
	require.NoError(t, err)

	// 0.10 added a hundred times stays exact in base 10.
	dime, err := MoneyFromString("0.10")
	require.NoError(t, err)
	sum := Money{}
	for i := 0; i < 100; i++ {
		sum = sum.Add(dime)
	}
	assert.Equal(t, "10.00", sum.StringFixed(2))

	assert.Equal(t, "16.50", price.MulInt(3).StringFixed(2))
}

func TestMoneyJSONHasTwoFractionalDigits(t *testing.T) {
	price, err := MoneyFromString("10")
	require.NoError(t, err)

	data, err := json.Marshal(price)
	require.NoError(t, err)
	assert.Equal(t, `"10.00"`, string(data))

	var parsed Money
	require.NoError(t, json.Unmarshal([]byte(`"25.50"`), &parsed))
	assert.Equal(t, "25.50", parsed.StringFixed(2))
}
