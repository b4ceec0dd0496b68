package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Attribute is a descriptive pricing field that the backend sends either as
// a string or as a bare number depending on the price source.
type Attribute string

func (a *Attribute) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Attribute(s)
		return nil
	}
	*a = Attribute(strings.TrimSpace(string(data)))
	return nil
}

// Or returns the attribute, or fallback when it is empty
func (a Attribute) Or(fallback string) string {
	if a == "" {
		return fallback
	}
	return string(a)
}

// PriceDimension is one price line of a pricing entry
type PriceDimension struct {
	Amount      decimal.Decimal `json:"amount"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
	Unit        string          `json:"unit,omitempty"`
	Description string          `json:"description,omitempty"`
}

// PricingEntry is one candidate quote returned by /api/pricing/{service}
type PricingEntry struct {
	Service       Attribute        `json:"service,omitempty"`
	InstanceType  Attribute        `json:"instanceType,omitempty"`
	VCPU          Attribute        `json:"vcpu,omitempty"`
	Memory        Attribute        `json:"memory,omitempty"`
	Storage       Attribute        `json:"storage,omitempty"`
	StorageClass  Attribute        `json:"storageClass,omitempty"`
	ProductFamily Attribute        `json:"productFamily,omitempty"`
	Description   Attribute        `json:"description,omitempty"`
	Location      Attribute        `json:"location,omitempty"`
	Prices        []PriceDimension `json:"prices"`
}

// Quote is the outcome of a pricing request. Entry is nil when the backend
// returned no data or reported failure; Reason then holds its message.
type Quote struct {
	Service ServiceKind
	Entry   *PricingEntry
	Count   int
	Reason  string
}

// HasData reports whether the quote can be turned into a cart item
func (q Quote) HasData() bool {
	return q.Entry != nil
}

// ConnectionStatus is the result of /api/test-connection
type ConnectionStatus struct {
	Connected bool
	Message   string
}
