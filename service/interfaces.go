package service

import (
	"context"
	"io"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/shopspring/decimal"
)

// ConnectionService reports whether the pricing backend is reachable
type ConnectionService interface {
	TestConnection(ctx context.Context) (*model.ConnectionStatus, error)
}

// InstanceService lists the EC2 instance types priced in a region
type InstanceService interface {
	GetAvailableInstances(ctx context.Context, region string) ([]string, error)
}

// PricingService fetches pricing entries for one service request payload
type PricingService interface {
	GetPricing(ctx context.Context, kind model.ServiceKind, payload map[string]any) ([]model.PricingEntry, error)
}

// CartStore is the server-side cart
type CartStore interface {
	AddCartItem(ctx context.Context, item model.CartItem) error
	GetCartItems(ctx context.Context) ([]model.CartItem, error)
	RemoveCartItem(ctx context.Context, id string) error
	ClearCart(ctx context.Context) error
	GetCartTotal(ctx context.Context) (decimal.Decimal, error)
}

// ReportService downloads the server-generated cost report
type ReportService interface {
	ExportCSV(ctx context.Context, w io.Writer) (string, error)
}

// QuoteService turns a submitted form into a pricing quote
type QuoteService interface {
	Quote(ctx context.Context, state model.FormState) (*model.Quote, error)
}

// MessageService holds the single user-facing message area
type MessageService interface {
	Success(text string)
	Info(text string)
	Error(text string)
	Clear()
	Current() *model.Message
}

// CartItemAdapter derives a cart item from a pricing entry and the form
type CartItemAdapter interface {
	FromPricing(entry model.PricingEntry, state model.FormState) (model.CartItem, error)
}
