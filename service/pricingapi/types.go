package pricingapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	baseURL       *url.URL
	client        *http.Client
	sessionCookie string
	logger        *zap.Logger
}

// ErrTransport marks failures to reach the backend or read its response
var ErrTransport = errors.New("pricing api unreachable")

// APIError is an application-level failure: a success:false body or a
// non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pricing api: http status %d", e.Status)
	}
	return fmt.Sprintf("pricing api: %s", e.Message)
}

// envelope is the part every backend response shares
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type pricingResponse struct {
	envelope
	Data  []model.PricingEntry `json:"data"`
	Count int                  `json:"count"`
}

type instancesResponse struct {
	envelope
	Instances []string `json:"instances"`
	Count     int      `json:"count"`
	Region    string   `json:"region,omitempty"`
}

type cartItemsResponse struct {
	envelope
	Items []model.CartItem `json:"items"`
	Count int              `json:"count"`
}

type cartTotalResponse struct {
	envelope
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type cartMutationResponse struct {
	envelope
	CartCount int `json:"cartCount"`
}

// AsAPIError unwraps an application-level failure from err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
