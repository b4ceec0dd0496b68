package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ServiceCost is the monthly cost of every cart item of one service
type ServiceCost struct {
	Name   string
	Amount decimal.Decimal
	Items  int
	Unit   string
}

// CostsByService groups cart items by service, highest cost first
func CostsByService(items []CartItem) []ServiceCost {
	grouped := make(map[string]*ServiceCost)
	for _, item := range items {
		cost, ok := grouped[item.Service]
		if !ok {
			cost = &ServiceCost{Name: item.Service, Unit: "USD"}
			grouped[item.Service] = cost
		}
		cost.Amount = cost.Amount.Add(item.MonthlyCost)
		cost.Items++
	}

	costs := make([]ServiceCost, 0, len(grouped))
	for _, cost := range grouped {
		costs = append(costs, *cost)
	}

	sort.Slice(costs, func(i, j int) bool {
		if costs[i].Amount.Equal(costs[j].Amount) {
			return costs[i].Name < costs[j].Name
		}
		return costs[i].Amount.GreaterThan(costs[j].Amount)
	})

	return costs
}
