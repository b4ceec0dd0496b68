package tools

import (
	"context"

	"github.com/elC0mpa/aws-pricing-cart/cmd/mcp/response"
	"github.com/elC0mpa/aws-pricing-cart/service/cart"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterCartTools registers the cart tools with the MCP server
func RegisterCartTools(s *server.MCPServer, t *Toolset) {
	s.AddTool(
		mcp.NewTool("cart_add",
			mcp.WithDescription("Price a service configuration and add it to the cart. Returns the reloaded cart."),
			serviceOption(),
			regionOption(),
			fieldsOption(),
		),
		t.addHandler,
	)

	s.AddTool(
		mcp.NewTool("cart_list",
			mcp.WithDescription("List the cart items with the backend total and the cost per service"),
		),
		t.listHandler,
	)

	s.AddTool(
		mcp.NewTool("cart_remove",
			mcp.WithDescription("Remove one item from the cart by id"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Cart item id as returned by cart_list")),
		),
		t.removeHandler,
	)

	s.AddTool(
		mcp.NewTool("cart_clear",
			mcp.WithDescription("Remove every item from the cart"),
			mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true to clear the cart")),
		),
		t.clearHandler,
	)

	s.AddTool(
		mcp.NewTool("cart_total",
			mcp.WithDescription("Get the monthly total of the cart as computed by the backend"),
		),
		t.totalHandler,
	)
}

func (t *Toolset) addHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := t.formState(ctx, request)
	if err != nil {
		return mcp.NewToolResultError("Invalid request: " + err.Error()), nil
	}

	c, messages := t.session()
	if err := c.AddToCart(ctx, state); err != nil {
		return failure("Failed to add item to cart", messages, err), nil
	}
	return t.cartResult(c)
}

func (t *Toolset) listHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, messages := t.session()
	if err := c.LoadCart(ctx); err != nil {
		return failure("Failed to load cart", messages, err), nil
	}
	return t.cartResult(c)
}

func (t *Toolset) removeHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c, messages := t.session()
	if err := c.RemoveFromCart(ctx, id); err != nil {
		return failure("Failed to remove item", messages, err), nil
	}
	return t.cartResult(c)
}

func (t *Toolset) clearHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	confirmed := request.GetBool("confirm", false)

	c, messages := t.session()
	err := c.ClearCart(ctx, func(string) bool { return confirmed })
	if err != nil {
		return failure("Failed to clear cart", messages, err), nil
	}
	return t.cartResult(c)
}

func (t *Toolset) totalHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, messages := t.session()
	if err := c.UpdateTotal(ctx); err != nil {
		return failure("Failed to load cart total", messages, err), nil
	}
	return jsonResult(response.ConvertTotal(c.Total()))
}

func (t *Toolset) cartResult(c cart.CartService) (*mcp.CallToolResult, error) {
	return jsonResult(response.ConvertCart(c.Items(), c.Total(), t.client.Session()))
}
