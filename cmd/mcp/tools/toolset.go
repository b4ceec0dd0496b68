package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/elC0mpa/aws-pricing-cart/service/cart"
	"github.com/elC0mpa/aws-pricing-cart/service/cartitem"
	"github.com/elC0mpa/aws-pricing-cart/service/form"
	"github.com/elC0mpa/aws-pricing-cart/service/notify"
	"github.com/elC0mpa/aws-pricing-cart/service/pricingapi"
	"github.com/elC0mpa/aws-pricing-cart/service/quote"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type backend interface {
	Session() string
	TestConnection(ctx context.Context) (*model.ConnectionStatus, error)
	GetAvailableInstances(ctx context.Context, region string) ([]string, error)
	GetPricing(ctx context.Context, kind model.ServiceKind, payload map[string]any) ([]model.PricingEntry, error)
	AddCartItem(ctx context.Context, item model.CartItem) error
	GetCartItems(ctx context.Context) ([]model.CartItem, error)
	RemoveCartItem(ctx context.Context, id string) error
	ClearCart(ctx context.Context) error
	GetCartTotal(ctx context.Context) (decimal.Decimal, error)
}

// Toolset shares one backend session across every tool call, so the cart
// persists for the life of the server. Calls may run concurrently and
// never share a message area.
type Toolset struct {
	client     backend
	region     string
	quotes     quote.QuoteService
	adapter    cartitem.CartItemService
	messageTTL time.Duration
	logger     *zap.Logger
}

func NewToolset(cfg model.Config, logger *zap.Logger) (*Toolset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := pricingapi.NewService(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Toolset{
		client:     client,
		region:     cfg.Region,
		quotes:     quote.NewService(client, logger),
		adapter:    cartitem.NewService(),
		messageTTL: cfg.MessageTTL,
		logger:     logger.Named("mcp"),
	}, nil
}

// session gives one tool call its own cart mirror and message area over the
// shared backend session
func (t *Toolset) session() (cart.CartService, notify.NotifyService) {
	messages := notify.NewService(t.messageTTL)
	return cart.NewService(t.client, t.quotes, t.adapter, messages, t.logger), messages
}

// formState builds the submitted form from tool arguments the same way the
// shell does: defaults first, then the given fields
func (t *Toolset) formState(ctx context.Context, request mcp.CallToolRequest) (model.FormState, error) {
	kind, err := model.ParseServiceKind(request.GetString("service", string(model.ServiceEC2)))
	if err != nil {
		return model.FormState{}, err
	}

	f := form.NewService(t.client, request.GetString("region", t.region), t.logger)
	if kind != f.Service() {
		if err := f.SelectService(ctx, kind); err != nil {
			return model.FormState{}, err
		}
	}

	if raw, ok := request.GetArguments()["fields"]; ok && raw != nil {
		fields, ok := raw.(map[string]any)
		if !ok {
			return model.FormState{}, fmt.Errorf("fields must be an object")
		}
		for key, value := range fields {
			if err := f.Set(key, fmt.Sprint(value)); err != nil {
				return model.FormState{}, err
			}
		}
	}

	return f.Snapshot(), nil
}

// failure prefers the message the cart service showed for this call
func failure(prefix string, messages notify.NotifyService, err error) *mcp.CallToolResult {
	if msg := messages.Current(); msg != nil && msg.Level == model.MessageError {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", prefix, msg.Text))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", prefix, err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
