package orchestrator

import (
	"io"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/elC0mpa/aws-pricing-cart/service/cart"
	"github.com/elC0mpa/aws-pricing-cart/service/cartitem"
	"github.com/elC0mpa/aws-pricing-cart/service/export"
	"github.com/elC0mpa/aws-pricing-cart/service/form"
	"github.com/elC0mpa/aws-pricing-cart/service/notify"
	"github.com/elC0mpa/aws-pricing-cart/service/pricingapi"
	"github.com/elC0mpa/aws-pricing-cart/service/quote"
	"go.uber.org/zap"
)

type Option func(*service)

// WithBeforeRender runs fn right before a command's output is drawn
func WithBeforeRender(fn func()) Option {
	return func(s *service) {
		s.beforeRender = fn
	}
}

// NewFromConfig wires the view state against the backend at cfg.APIURL
func NewFromConfig(cfg model.Config, out io.Writer, logger *zap.Logger, opts ...Option) (*service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := pricingapi.NewService(cfg, logger)
	if err != nil {
		return nil, err
	}

	messages := notify.NewService(cfg.MessageTTL)
	quotes := quote.NewService(client, logger)
	adapter := cartitem.NewService()
	cartService := cart.NewService(client, quotes, adapter, messages, logger)

	view := NewService(Deps{
		Form:       form.NewService(client, cfg.Region, logger),
		Cart:       cartService,
		Exporter:   export.NewService(client, cartService, messages, logger),
		Quotes:     quotes,
		Adapter:    adapter,
		Connection: client,
		Messages:   messages,
		Logger:     logger,
	}, out, cfg.ExportDir)
	view.session = client.Session
	for _, opt := range opts {
		opt(view)
	}

	return view, nil
}
