package quote

import (
	"context"

	"github.com/elC0mpa/aws-pricing-cart/model"
	services "github.com/elC0mpa/aws-pricing-cart/service"
	"go.uber.org/zap"
)

type service struct {
	pricing services.PricingService
	logger  *zap.Logger
}

type QuoteService interface {
	BuildRequest(state model.FormState) (map[string]any, error)
	Quote(ctx context.Context, state model.FormState) (*model.Quote, error)
}
