package quote

import (
	"context"
	"fmt"

	"github.com/elC0mpa/aws-pricing-cart/model"
	services "github.com/elC0mpa/aws-pricing-cart/service"
	"github.com/elC0mpa/aws-pricing-cart/service/pricingapi"
	"go.uber.org/zap"
)

func NewService(pricing services.PricingService, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		pricing: pricing,
		logger:  logger.Named("quote"),
	}
}

// BuildRequest maps the form onto the payload of the service's endpoint
func (s *service) BuildRequest(state model.FormState) (map[string]any, error) {
	spec, err := model.SpecFor(state.Service)
	if err != nil {
		return nil, err
	}

	value := func(key string) string {
		field, _ := spec.Field(key)
		return state.Value(key, field.Default)
	}
	region := state.Region
	if region == "" {
		region = model.DefaultRegion
	}

	switch state.Service {
	case model.ServiceEC2:
		return map[string]any{
			model.FieldInstanceType:    value(model.FieldInstanceType),
			"region":                   region,
			model.FieldOperatingSystem: value(model.FieldOperatingSystem),
			model.FieldTenancy:         value(model.FieldTenancy),
		}, nil
	case model.ServiceRDS:
		return map[string]any{
			model.FieldInstanceType:     value(model.FieldInstanceType),
			"region":                    region,
			model.FieldDatabaseEngine:   value(model.FieldDatabaseEngine),
			model.FieldDeploymentOption: value(model.FieldDeploymentOption),
		}, nil
	case model.ServiceS3:
		return map[string]any{
			model.FieldStorageClass: value(model.FieldStorageClass),
			"region":                region,
			model.FieldStorageGB:    state.Float(model.FieldStorageGB, 0),
		}, nil
	case model.ServiceVPC:
		return map[string]any{
			model.FieldComponent: value(model.FieldComponent),
			"region":             region,
			model.FieldQuantity:  state.Int(model.FieldQuantity, 1),
		}, nil
	case model.ServiceALB:
		return map[string]any{
			"region":            region,
			model.FieldQuantity: state.Int(model.FieldQuantity, 1),
		}, nil
	case model.ServiceRoute53:
		return map[string]any{
			model.FieldComponent: value(model.FieldComponent),
			model.FieldQuantity:  state.Int(model.FieldQuantity, 1),
		}, nil
	}

	return nil, fmt.Errorf("no request mapping for service %q", state.Service)
}

// Quote submits the form and keeps only the first entry. A success:false
// body or an empty list is a quote without data, not an error.
func (s *service) Quote(ctx context.Context, state model.FormState) (*model.Quote, error) {
	payload, err := s.BuildRequest(state)
	if err != nil {
		return nil, err
	}

	entries, err := s.pricing.GetPricing(ctx, state.Service, payload)
	if err != nil {
		if apiErr, ok := pricingapi.AsAPIError(err); ok {
			s.logger.Info("pricing request rejected",
				zap.String("service", string(state.Service)),
				zap.Int("status", apiErr.Status),
				zap.String("reason", apiErr.Message),
			)
			return &model.Quote{Service: state.Service, Reason: apiErr.Message}, nil
		}
		return nil, fmt.Errorf("fetch %s pricing: %w", state.Service, err)
	}

	q := &model.Quote{Service: state.Service, Count: len(entries)}
	if len(entries) > 0 {
		q.Entry = &entries[0]
	}
	return q, nil
}
