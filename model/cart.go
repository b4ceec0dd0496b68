package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CartItem is one priced resource configuration persisted by the backend
type CartItem struct {
	ID             string          `json:"id,omitempty"`
	Service        string          `json:"service"`
	ResourceType   string          `json:"resourceType"`
	Specifications string          `json:"specifications"`
	Region         string          `json:"region"`
	Quantity       int             `json:"quantity"`
	HourlyCost     decimal.Decimal `json:"hourlyCost"`
	MonthlyCost    decimal.Decimal `json:"monthlyCost"`
}

// MarshalJSON writes the costs as JSON numbers, which is what the backend reads
func (c CartItem) MarshalJSON() ([]byte, error) {
	type alias CartItem
	return json.Marshal(struct {
		alias
		HourlyCost  json.Number `json:"hourlyCost"`
		MonthlyCost json.Number `json:"monthlyCost"`
	}{
		alias:       alias(c),
		HourlyCost:  json.Number(c.HourlyCost.String()),
		MonthlyCost: json.Number(c.MonthlyCost.String()),
	})
}

// CartState is the render state of the cart view
type CartState string

const (
	CartEmpty     CartState = "EMPTY"
	CartPopulated CartState = "POPULATED"
)

// CartStateOf derives the view state from the mirrored items
func CartStateOf(items []CartItem) CartState {
	if len(items) == 0 {
		return CartEmpty
	}
	return CartPopulated
}
