package response

import (
	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/shopspring/decimal"
)

const currency = "USD"

// ConvertConnection converts model.ConnectionStatus to response.Connection
func ConvertConnection(status *model.ConnectionStatus) *Connection {
	if status == nil {
		return &Connection{}
	}
	return &Connection{
		Connected: status.Connected,
		Message:   status.Message,
	}
}

func ConvertInstances(region string, instances []string) *Instances {
	if instances == nil {
		instances = []string{}
	}
	return &Instances{
		Region:    region,
		Instances: instances,
		Count:     len(instances),
	}
}

// ConvertQuote converts a quote and its optional cart item preview
func ConvertQuote(q *model.Quote, preview *model.CartItem) *Quote {
	if q == nil {
		return nil
	}

	out := &Quote{
		Service: string(q.Service),
		Found:   q.HasData(),
		Reason:  q.Reason,
		Count:   q.Count,
	}
	if q.Entry != nil {
		out.Entry = convertEntry(*q.Entry)
	}
	if preview != nil {
		item := ConvertCartItem(*preview)
		out.Preview = &item
	}
	return out
}

func convertEntry(e model.PricingEntry) *PricingEntry {
	prices := make([]Price, 0, len(e.Prices))
	for _, p := range e.Prices {
		prices = append(prices, Price{
			Amount:      p.Amount.InexactFloat64(),
			MonthlyCost: p.MonthlyCost.InexactFloat64(),
			Unit:        p.Unit,
			Description: p.Description,
		})
	}

	return &PricingEntry{
		InstanceType:  string(e.InstanceType),
		VCPU:          string(e.VCPU),
		Memory:        string(e.Memory),
		Storage:       string(e.Storage),
		StorageClass:  string(e.StorageClass),
		ProductFamily: string(e.ProductFamily),
		Description:   string(e.Description),
		Location:      string(e.Location),
		Prices:        prices,
	}
}

// ConvertCartItem converts model.CartItem to response.CartItem
func ConvertCartItem(item model.CartItem) CartItem {
	return CartItem{
		ID:             item.ID,
		Service:        item.Service,
		ResourceType:   item.ResourceType,
		Specifications: item.Specifications,
		Region:         item.Region,
		Quantity:       item.Quantity,
		HourlyCost:     item.HourlyCost.InexactFloat64(),
		MonthlyCost:    item.MonthlyCost.InexactFloat64(),
	}
}

// ConvertCart converts the cart mirror. The total is the backend's, never a
// local sum.
func ConvertCart(items []model.CartItem, total decimal.Decimal, session string) *Cart {
	converted := make([]CartItem, 0, len(items))
	for _, item := range items {
		converted = append(converted, ConvertCartItem(item))
	}

	var byService []ServiceCost
	for _, cost := range model.CostsByService(items) {
		byService = append(byService, ServiceCost{
			Name:   cost.Name,
			Amount: cost.Amount.InexactFloat64(),
			Items:  cost.Items,
			Unit:   cost.Unit,
		})
	}
	if byService == nil {
		byService = []ServiceCost{}
	}

	state := model.CartStateOf(items)
	return &Cart{
		Items:         converted,
		Count:         len(converted),
		Total:         total.InexactFloat64(),
		Currency:      currency,
		State:         string(state),
		ExportEnabled: state == model.CartPopulated,
		ByService:     byService,
		Session:       session,
	}
}

func ConvertTotal(total decimal.Decimal) *Total {
	return &Total{
		Total:    total.InexactFloat64(),
		Currency: currency,
	}
}
