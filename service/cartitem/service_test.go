package cartitem

import (
	"testing"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func state(kind model.ServiceKind, overrides map[string]string) model.FormState {
	values := model.MustSpecFor(kind).Defaults()
	for k, v := range overrides {
		values[k] = v
	}
	return model.FormState{Service: kind, Region: model.DefaultRegion, Values: values}
}

func hourlyEntry(amount string) model.PricingEntry {
	return model.PricingEntry{
		InstanceType: "t3.micro",
		VCPU:         "2",
		Memory:       "1 GiB",
		Prices:       []model.PriceDimension{{Amount: decimal.RequireFromString(amount)}},
	}
}

func monthlyEntry(monthly string) model.PricingEntry {
	return model.PricingEntry{
		StorageClass:  "General Purpose",
		ProductFamily: "NAT Gateway",
		Description:   "USE1-NatGateway-Hours",
		Prices:        []model.PriceDimension{{MonthlyCost: decimal.RequireFromString(monthly)}},
	}
}

func TestFromPricing_EC2(t *testing.T) {
	item, err := NewService().FromPricing(hourlyEntry("0.0104"), state(model.ServiceEC2, map[string]string{
		model.FieldInstanceType: "t3.micro",
		model.FieldQuantity:     "2",
	}))
	require.NoError(t, err)

	assert.Equal(t, "EC2", item.Service)
	assert.Equal(t, "t3.micro", item.ResourceType)
	assert.Equal(t, "2 vCPU, 1 GiB RAM, Linux, Shared tenancy", item.Specifications)
	assert.Equal(t, model.DefaultRegion, item.Region)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, decimal.RequireFromString("0.0208").Equal(item.HourlyCost), item.HourlyCost.String())
	assert.True(t, decimal.RequireFromString("15.184").Equal(item.MonthlyCost), item.MonthlyCost.String())
	assert.Empty(t, item.ID)
}

func TestFromPricing_MonthlyIsExactlyHourlyTimes730(t *testing.T) {
	for _, kind := range []model.ServiceKind{model.ServiceEC2, model.ServiceRDS} {
		for _, amount := range []string{"0.0104", "0.017", "1.234567", "0.0000001"} {
			item, err := NewService().FromPricing(hourlyEntry(amount), state(kind, map[string]string{model.FieldQuantity: "3"}))
			require.NoError(t, err)
			assert.True(t, item.HourlyCost.Mul(decimal.NewFromInt(730)).Equal(item.MonthlyCost), "%s %s", kind, amount)
		}
	}
}

func TestFromPricing_S3(t *testing.T) {
	item, err := NewService().FromPricing(monthlyEntry("2.30"), state(model.ServiceS3, map[string]string{
		model.FieldStorageGB: "100",
	}))
	require.NoError(t, err)

	assert.Equal(t, "S3", item.Service)
	assert.Equal(t, "General Purpose", item.ResourceType)
	assert.Equal(t, "100 GB storage", item.Specifications)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, decimal.RequireFromString("2.30").Equal(item.MonthlyCost))
	assert.True(t, decimal.RequireFromString("2.30").Div(decimal.NewFromInt(730)).Equal(item.HourlyCost))
	assert.Equal(t, "0.00315", item.HourlyCost.StringFixed(5))
}

func TestFromPricing_MonthlyServices(t *testing.T) {
	tests := []struct {
		kind         model.ServiceKind
		resourceType string
		specs        string
		region       string
	}{
		{model.ServiceVPC, "NAT Gateway", "USE1-NatGateway-Hours", model.DefaultRegion},
		{model.ServiceALB, "Application Load Balancer", "NAT Gateway", model.DefaultRegion},
		{model.ServiceRoute53, "NAT Gateway", "USE1-NatGateway-Hours", GlobalRegion},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			item, err := NewService().FromPricing(monthlyEntry("32.85"), state(tc.kind, map[string]string{model.FieldQuantity: "4"}))
			require.NoError(t, err)

			assert.Equal(t, tc.resourceType, item.ResourceType)
			assert.Equal(t, tc.specs, item.Specifications)
			assert.Equal(t, tc.region, item.Region)
			assert.Equal(t, 4, item.Quantity)
			assert.True(t, decimal.RequireFromString("32.85").Equal(item.MonthlyCost))
			assert.Equal(t, "0.045", item.HourlyCost.StringFixed(3))
		})
	}
}

func TestFromPricing_Fallbacks(t *testing.T) {
	entry := model.PricingEntry{Prices: []model.PriceDimension{{Amount: decimal.RequireFromString("0.5")}}}

	item, err := NewService().FromPricing(entry, state(model.ServiceRDS, map[string]string{model.FieldQuantity: "abc"}))
	require.NoError(t, err)

	assert.Equal(t, "db.t3.micro", item.ResourceType)
	assert.Equal(t, "MySQL, Single-AZ, Unknown vCPU, Unknown RAM", item.Specifications)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, decimal.RequireFromString("365").Equal(item.MonthlyCost))
}

func TestFromPricing_Deterministic(t *testing.T) {
	svc := NewService()
	form := state(model.ServiceEC2, map[string]string{model.FieldQuantity: "5"})

	first, err := svc.FromPricing(hourlyEntry("0.0416"), form)
	require.NoError(t, err)
	second, err := svc.FromPricing(hourlyEntry("0.0416"), form)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFromPricing_Errors(t *testing.T) {
	_, err := NewService().FromPricing(model.PricingEntry{}, state(model.ServiceEC2, nil))
	assert.ErrorIs(t, err, ErrNoPrice)

	_, err = NewService().FromPricing(hourlyEntry("1"), model.FormState{Service: "lambda"})
	assert.Error(t, err)
}
