package cartitem

import (
	"fmt"
	"strconv"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/shopspring/decimal"
)

// GlobalRegion is shown for services that are not priced per region
const GlobalRegion = "Global"

var hoursPerMonth = decimal.NewFromInt(model.HoursPerMonth)

func NewService() *service {
	return &service{}
}

// FromPricing turns the first pricing entry and the submitted form into a
// cart item. The item has no ID until the backend stores it.
func (s *service) FromPricing(entry model.PricingEntry, state model.FormState) (model.CartItem, error) {
	spec, err := model.SpecFor(state.Service)
	if err != nil {
		return model.CartItem{}, err
	}
	if len(entry.Prices) == 0 {
		return model.CartItem{}, fmt.Errorf("%s: %w", spec.Label, ErrNoPrice)
	}

	quantity := 1
	if spec.QuantityField != "" {
		quantity = state.Int(spec.QuantityField, 1)
	}

	hourly, monthly, err := costs(spec.Derivation, entry.Prices[0], quantity)
	if err != nil {
		return model.CartItem{}, err
	}

	resourceType, specifications, err := describe(spec, entry, state)
	if err != nil {
		return model.CartItem{}, err
	}

	region := state.Region
	if state.Service == model.ServiceRoute53 {
		region = GlobalRegion
	}

	return model.CartItem{
		Service:        spec.Label,
		ResourceType:   resourceType,
		Specifications: specifications,
		Region:         region,
		Quantity:       quantity,
		HourlyCost:     hourly,
		MonthlyCost:    monthly,
	}, nil
}

// costs applies the service's derivation rule. Compute services are quoted
// per hour and multiplied by quantity; the others are quoted per month with
// quantity already applied by the backend.
func costs(derivation model.CostDerivation, price model.PriceDimension, quantity int) (decimal.Decimal, decimal.Decimal, error) {
	switch derivation {
	case model.DeriveFromHourly:
		hourly := price.Amount.Mul(decimal.NewFromInt(int64(quantity)))
		return hourly, hourly.Mul(hoursPerMonth), nil
	case model.DeriveFromMonthly:
		monthly := price.MonthlyCost
		return monthly.Div(hoursPerMonth), monthly, nil
	}
	return decimal.Zero, decimal.Zero, fmt.Errorf("unknown cost derivation %d", derivation)
}

func describe(spec model.ServiceSpec, entry model.PricingEntry, state model.FormState) (string, string, error) {
	value := func(key string) string {
		field, _ := spec.Field(key)
		return state.Value(key, field.Default)
	}

	switch spec.Kind {
	case model.ServiceEC2:
		return entry.InstanceType.Or(value(model.FieldInstanceType)),
			fmt.Sprintf("%s vCPU, %s RAM, %s, %s tenancy",
				entry.VCPU.Or("Unknown"), entry.Memory.Or("Unknown"),
				value(model.FieldOperatingSystem), value(model.FieldTenancy)),
			nil
	case model.ServiceRDS:
		return entry.InstanceType.Or(value(model.FieldInstanceType)),
			fmt.Sprintf("%s, %s, %s vCPU, %s RAM",
				value(model.FieldDatabaseEngine), value(model.FieldDeploymentOption),
				entry.VCPU.Or("Unknown"), entry.Memory.Or("Unknown")),
			nil
	case model.ServiceS3:
		gb := strconv.FormatFloat(state.Float(model.FieldStorageGB, 0), 'f', -1, 64)
		return entry.StorageClass.Or(value(model.FieldStorageClass)),
			fmt.Sprintf("%s GB storage", gb),
			nil
	case model.ServiceVPC, model.ServiceRoute53:
		return entry.ProductFamily.Or(value(model.FieldComponent)),
			entry.Description.Or("N/A"),
			nil
	case model.ServiceALB:
		return "Application Load Balancer",
			entry.ProductFamily.Or(entry.Description.Or("N/A")),
			nil
	}
	return "", "", fmt.Errorf("no cart mapping for service %q", spec.Kind)
}
