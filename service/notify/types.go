package notify

import (
	"sync"
	"time"

	"github.com/elC0mpa/aws-pricing-cart/model"
)

// DefaultTTL is how long success and info messages stay visible
const DefaultTTL = 4 * time.Second

type service struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	current *model.Message
}

type NotifyService interface {
	Success(text string)
	Info(text string)
	Error(text string)
	Clear()
	Current() *model.Message
}
