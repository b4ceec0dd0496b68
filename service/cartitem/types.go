package cartitem

import (
	"errors"

	"github.com/elC0mpa/aws-pricing-cart/model"
)

// ErrNoPrice is returned for pricing entries without any price dimension
var ErrNoPrice = errors.New("pricing entry has no price")

type service struct{}

type CartItemService interface {
	FromPricing(entry model.PricingEntry, state model.FormState) (model.CartItem, error)
}
