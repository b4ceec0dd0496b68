package notify

import (
	"time"

	"github.com/elC0mpa/aws-pricing-cart/model"
)

type Option func(*service)

// WithClock replaces time.Now when evaluating expiry
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func NewService(ttl time.Duration, opts ...Option) *service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &service{
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Success(text string) {
	s.set(model.MessageSuccess, text, s.now().Add(s.ttl))
}

func (s *service) Info(text string) {
	s.set(model.MessageInfo, text, s.now().Add(s.ttl))
}

// Error messages never expire on their own
func (s *service) Error(text string) {
	s.set(model.MessageError, text, time.Time{})
}

func (s *service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the visible message, or nil once it has expired
func (s *service) Current() *model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	if !s.current.ExpiresAt.IsZero() && !s.now().Before(s.current.ExpiresAt) {
		s.current = nil
		return nil
	}

	msg := *s.current
	return &msg
}

func (s *service) set(level model.MessageLevel, text string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &model.Message{Level: level, Text: text, ExpiresAt: expires}
}
