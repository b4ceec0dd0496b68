package tools

import (
	"context"
	"fmt"

	"github.com/elC0mpa/aws-pricing-cart/cmd/mcp/response"
	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var serviceNames = func() []string {
	names := make([]string, 0, len(model.AllServices))
	for _, kind := range model.AllServices {
		names = append(names, string(kind))
	}
	return names
}()

// RegisterPricingTools registers the read-only pricing tools with the MCP server
func RegisterPricingTools(s *server.MCPServer, t *Toolset) {
	s.AddTool(
		mcp.NewTool("pricing_test_connection",
			mcp.WithDescription("Check whether the AWS pricing backend is reachable and its pricing client is initialized"),
		),
		t.testConnectionHandler,
	)

	s.AddTool(
		mcp.NewTool("pricing_available_instances",
			mcp.WithDescription("List the EC2 instance types the backend can price in a region"),
			mcp.WithString("region", mcp.Description("AWS region display name, e.g. \"US East (N. Virginia)\"")),
		),
		t.availableInstancesHandler,
	)

	s.AddTool(
		mcp.NewTool("pricing_quote",
			mcp.WithDescription("Get on-demand pricing for one service configuration, with the hourly and monthly cost it would add to the cart"),
			serviceOption(),
			regionOption(),
			fieldsOption(),
		),
		t.quoteHandler,
	)
}

func serviceOption() mcp.ToolOption {
	return mcp.WithString("service",
		mcp.Required(),
		mcp.Description("Service to price"),
		mcp.Enum(serviceNames...),
	)
}

func regionOption() mcp.ToolOption {
	return mcp.WithString("region", mcp.Description("AWS region display name; ignored for route53"))
}

func fieldsOption() mcp.ToolOption {
	return mcp.WithObject("fields",
		mcp.Description("Form fields, e.g. {\"instanceType\": \"t3.micro\", \"quantity\": 2}. Keys: instanceType, operatingSystem, tenancy, databaseEngine, deploymentOption, storageClass, storageGB, component, quantity"),
	)
}

func (t *Toolset) testConnectionHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := t.client.TestConnection(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to reach pricing backend: %v", err)), nil
	}
	return jsonResult(response.ConvertConnection(status))
}

func (t *Toolset) availableInstancesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	region := request.GetString("region", t.region)
	instances, err := t.client.GetAvailableInstances(ctx, region)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list instance types: %v", err)), nil
	}
	return jsonResult(response.ConvertInstances(region, instances))
}

func (t *Toolset) quoteHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := t.formState(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid request: %v", err)), nil
	}

	q, err := t.quotes.Quote(ctx, state)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch pricing: %v", err)), nil
	}

	var preview *model.CartItem
	if q.HasData() {
		if item, err := t.adapter.FromPricing(*q.Entry, state); err == nil {
			preview = &item
		}
	}
	return jsonResult(response.ConvertQuote(q, preview))
}
