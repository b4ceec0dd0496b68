package cart

import (
	"context"
	"fmt"

	"github.com/elC0mpa/aws-pricing-cart/model"
	services "github.com/elC0mpa/aws-pricing-cart/service"
	"github.com/elC0mpa/aws-pricing-cart/service/pricingapi"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ClearPrompt is shown before the cart is emptied
const ClearPrompt = "Are you sure you want to clear the cart?"

func NewService(store services.CartStore, quotes services.QuoteService, adapter services.CartItemAdapter, messages services.MessageService, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		store:    store,
		quotes:   quotes,
		adapter:  adapter,
		messages: messages,
		logger:   logger.Named("cart"),
		total:    decimal.Zero,
	}
}

// AddToCart quotes the form, converts the first entry into a cart item and
// stores it. Only one add runs at a time.
func (s *service) AddToCart(ctx context.Context, state model.FormState) error {
	if !s.adding.TryLock() {
		return ErrAddInFlight
	}
	defer s.adding.Unlock()

	q, err := s.quotes.Quote(ctx, state)
	if err != nil {
		s.messages.Error(MsgFetchFailed)
		return err
	}
	if !q.HasData() {
		text := MsgNoData
		if q.Reason != "" {
			text = q.Reason
		}
		s.messages.Error(text)
		return fmt.Errorf("%s: %w", state.Service, ErrNoData)
	}

	item, err := s.adapter.FromPricing(*q.Entry, state)
	if err != nil {
		s.messages.Error(MsgAddFailed)
		return err
	}

	if err := s.store.AddCartItem(ctx, item); err != nil {
		s.fail(err, MsgAddFailed)
		return fmt.Errorf("add cart item: %w", err)
	}

	s.logger.Debug("item added",
		zap.String("service", item.Service),
		zap.String("resource_type", item.ResourceType),
		zap.String("monthly_cost", item.MonthlyCost.String()),
	)
	s.messages.Success(MsgAdded)

	return s.LoadCart(ctx)
}

func (s *service) RemoveFromCart(ctx context.Context, id string) error {
	if err := s.store.RemoveCartItem(ctx, id); err != nil {
		s.fail(err, MsgRemoveFailed)
		return fmt.Errorf("remove cart item %s: %w", id, err)
	}

	s.messages.Success(MsgRemoved)
	return s.LoadCart(ctx)
}

// ClearCart empties the cart once confirm agrees. A nil confirm counts as
// agreement.
func (s *service) ClearCart(ctx context.Context, confirm func(prompt string) bool) error {
	if confirm != nil && !confirm(ClearPrompt) {
		return ErrDeclined
	}

	if err := s.store.ClearCart(ctx); err != nil {
		s.fail(err, MsgClearFailed)
		return fmt.Errorf("clear cart: %w", err)
	}

	s.messages.Success(MsgCleared)
	return s.LoadCart(ctx)
}

// LoadCart replaces the local mirror with the server's items and total
func (s *service) LoadCart(ctx context.Context) error {
	items, err := s.store.GetCartItems(ctx)
	if err != nil {
		s.fail(err, MsgLoadFailed)
		return fmt.Errorf("load cart items: %w", err)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	return s.UpdateTotal(ctx)
}

func (s *service) UpdateTotal(ctx context.Context) error {
	total, err := s.store.GetCartTotal(ctx)
	if err != nil {
		s.fail(err, MsgLoadFailed)
		return fmt.Errorf("load cart total: %w", err)
	}

	s.mu.Lock()
	s.total = total
	s.mu.Unlock()
	return nil
}

func (s *service) Items() []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.CartItem(nil), s.items...)
}

func (s *service) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

func (s *service) State() model.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CartStateOf(s.items)
}

func (s *service) ExportEnabled() bool {
	return s.State() == model.CartPopulated
}

// fail reports err through the message area, preferring the server's text
func (s *service) fail(err error, fallback string) {
	text := fallback
	if apiErr, ok := pricingapi.AsAPIError(err); ok && apiErr.Message != "" {
		text = apiErr.Message
	}
	s.logger.Debug("cart operation failed", zap.String("message", text), zap.Error(err))
	s.messages.Error(text)
}
