package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/elC0mpa/aws-pricing-cart/model"
	services "github.com/elC0mpa/aws-pricing-cart/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrAddInFlight is returned when an add is requested while another runs
	ErrAddInFlight = errors.New("add to cart already in progress")
	// ErrNoData means the pricing backend had nothing to add
	ErrNoData = errors.New("no pricing data")
	// ErrDeclined means the user did not confirm a destructive action
	ErrDeclined = errors.New("declined")
)

// User-facing messages
const (
	MsgFetchFailed  = "Failed to fetch pricing"
	MsgNoData       = "No pricing data found for the selected configuration"
	MsgAddFailed    = "Failed to add item to cart"
	MsgRemoveFailed = "Failed to remove item"
	MsgClearFailed  = "Failed to clear cart"
	MsgLoadFailed   = "Failed to load cart"

	MsgAdded   = "Item added to cart"
	MsgRemoved = "Item removed from cart"
	MsgCleared = "Cart cleared"
)

type service struct {
	store    services.CartStore
	quotes   services.QuoteService
	adapter  services.CartItemAdapter
	messages services.MessageService
	logger   *zap.Logger

	// adding is the latch held for the whole add flow
	adding sync.Mutex

	mu    sync.RWMutex
	items []model.CartItem
	total decimal.Decimal
}

type CartService interface {
	AddToCart(ctx context.Context, state model.FormState) error
	RemoveFromCart(ctx context.Context, id string) error
	ClearCart(ctx context.Context, confirm func(prompt string) bool) error
	LoadCart(ctx context.Context) error
	UpdateTotal(ctx context.Context) error
	Items() []model.CartItem
	Total() decimal.Decimal
	State() model.CartState
	ExportEnabled() bool
}
