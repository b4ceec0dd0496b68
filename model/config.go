package model

import "time"

// Config is the client configuration read from the environment
type Config struct {
	APIURL        string        `env:"AWS_CART_API_URL" envDefault:"http://localhost:5000"`
	Region        string        `env:"AWS_CART_REGION" envDefault:"US East (N. Virginia)"`
	Session       string        `env:"AWS_CART_SESSION"`
	SessionCookie string        `env:"AWS_CART_SESSION_COOKIE" envDefault:"session"`
	Timeout       time.Duration `env:"AWS_CART_TIMEOUT" envDefault:"30s"`
	MessageTTL    time.Duration `env:"AWS_CART_MESSAGE_TTL" envDefault:"4s"`
	ExportDir     string        `env:"AWS_CART_EXPORT_DIR" envDefault:"."`
}
