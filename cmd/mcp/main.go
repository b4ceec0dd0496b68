package main

import (
	"fmt"
	"os"

	"github.com/elC0mpa/aws-pricing-cart/cmd/mcp/tools"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stderr"}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	toolset, err := tools.NewToolset(cfg.Cart, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backend error: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"aws-pricing-cart-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterPricingTools(s, toolset)
	tools.RegisterCartTools(s, toolset)

	logger.Info("serving mcp over stdio",
		zap.String("api_url", cfg.Cart.APIURL),
		zap.Bool("shared_session", cfg.HasSession()),
	)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
