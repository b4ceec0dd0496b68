package config

import "github.com/elC0mpa/aws-pricing-cart/model"

type service struct {
	lookup func(string) (string, bool)
}

type ConfigService interface {
	GetConfig(flags model.Flags) (model.Config, error)
}
