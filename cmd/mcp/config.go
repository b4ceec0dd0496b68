package main

import (
	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/elC0mpa/aws-pricing-cart/service/config"
)

// Config holds environment-based configuration for the MCP server
type Config struct {
	Cart model.Config
}

// LoadConfig reads the same AWS_CART_* variables as the CLI
func LoadConfig() (*Config, error) {
	cfg, err := config.NewService().GetConfig(model.Flags{})
	if err != nil {
		return nil, err
	}
	return &Config{Cart: cfg}, nil
}

// HasSession returns true if tool calls join an existing cart
func (c *Config) HasSession() bool {
	return c.Cart.Session != ""
}
