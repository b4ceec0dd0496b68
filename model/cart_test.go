package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItem_MarshalJSON(t *testing.T) {
	item := CartItem{
		Service:        "EC2",
		ResourceType:   "t2.micro",
		Specifications: "Linux, Shared",
		Region:         DefaultRegion,
		Quantity:       2,
		HourlyCost:     decimal.RequireFromString("0.0208"),
		MonthlyCost:    decimal.RequireFromString("15.184"),
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"hourlyCost":0.0208`)
	assert.Contains(t, string(data), `"monthlyCost":15.184`)
	assert.Contains(t, string(data), `"quantity":2`)
	assert.NotContains(t, string(data), `"id"`)

	var back CartItem
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, item.MonthlyCost.Equal(back.MonthlyCost))
	assert.Equal(t, item.ResourceType, back.ResourceType)
}

func TestCartItem_MarshalJSONLeavesDecimalDefault(t *testing.T) {
	data, err := json.Marshal(decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.Equal(t, `"1.5"`, string(data))
}
