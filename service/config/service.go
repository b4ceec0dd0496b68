package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/elC0mpa/aws-pricing-cart/model"
)

func NewService() *service {
	return &service{lookup: os.LookupEnv}
}

// GetConfig reads the environment and lets non-empty flags override it
func (s *service) GetConfig(flags model.Flags) (model.Config, error) {
	var cfg model.Config

	environ := make(map[string]string)
	for _, key := range []string{
		"AWS_CART_API_URL", "AWS_CART_REGION", "AWS_CART_SESSION", "AWS_CART_SESSION_COOKIE",
		"AWS_CART_TIMEOUT", "AWS_CART_MESSAGE_TTL", "AWS_CART_EXPORT_DIR",
	} {
		if v, ok := s.lookup(key); ok {
			environ[key] = v
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return model.Config{}, fmt.Errorf("parse env: %w", err)
	}

	if flags.APIURL != "" {
		cfg.APIURL = flags.APIURL
	}
	if flags.Session != "" {
		cfg.Session = flags.Session
	}
	if flags.Region != "" {
		cfg.Region = flags.Region
	}
	if flags.ExportDir != "" {
		cfg.ExportDir = flags.ExportDir
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if _, err := url.ParseRequestURI(cfg.APIURL); err != nil {
		return model.Config{}, fmt.Errorf("invalid api url %q: %w", cfg.APIURL, err)
	}

	return cfg, nil
}
