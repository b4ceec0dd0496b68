package tools

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/elC0mpa/aws-pricing-cart/cmd/mcp/response"
	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/elC0mpa/aws-pricing-cart/service/pricingapi/pricingapitest"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newToolset(t *testing.T) (*Toolset, *pricingapitest.Server) {
	t.Helper()

	srv := pricingapitest.NewServer(t)
	ts, err := NewToolset(model.Config{
		APIURL:        srv.URL,
		Region:        model.DefaultRegion,
		SessionCookie: pricingapitest.SessionCookie,
		Timeout:       5 * time.Second,
	}, nil)
	require.NoError(t, err)

	return ts, srv
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any, v any) *mcp.CallToolResult {
	t.Helper()

	var request mcp.CallToolRequest
	request.Params.Arguments = args

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	if v != nil && !result.IsError {
		text, ok := result.Content[0].(mcp.TextContent)
		require.True(t, ok)
		require.NoError(t, json.Unmarshal([]byte(text.Text), v))
	}
	return result
}

func TestTestConnection(t *testing.T) {
	ts, _ := newToolset(t)

	var got response.Connection
	call(t, ts.testConnectionHandler, nil, &got)
	assert.True(t, got.Connected)
}

func TestAvailableInstances(t *testing.T) {
	ts, srv := newToolset(t)
	srv.SetInstances("EU (Ireland)", []string{"t3.small"})

	var got response.Instances
	call(t, ts.availableInstancesHandler, map[string]any{"region": "EU (Ireland)"}, &got)
	assert.Equal(t, "EU (Ireland)", got.Region)
	assert.Equal(t, []string{"t3.small"}, got.Instances)
	assert.Equal(t, 1, got.Count)
}

func TestQuote(t *testing.T) {
	ts, srv := newToolset(t)

	var got response.Quote
	call(t, ts.quoteHandler, map[string]any{
		"service": "ec2",
		"fields":  map[string]any{"instanceType": "t3.micro", "quantity": float64(2)},
	}, &got)

	assert.True(t, got.Found)
	require.NotNil(t, got.Entry)
	assert.Equal(t, "t3.micro", got.Entry.InstanceType)
	require.NotNil(t, got.Preview)
	assert.InDelta(t, 0.0208, got.Preview.HourlyCost, 1e-9)
	assert.InDelta(t, 15.184, got.Preview.MonthlyCost, 1e-9)
	assert.Empty(t, srv.Requests("/api/cart/add"))
}

func TestQuote_InvalidField(t *testing.T) {
	ts, _ := newToolset(t)

	result := call(t, ts.quoteHandler, map[string]any{
		"service": "s3",
		"fields":  map[string]any{"tenancy": "Shared"},
	}, nil)
	assert.True(t, result.IsError)
}

func TestCartFlow(t *testing.T) {
	ts, srv := newToolset(t)

	var cart response.Cart
	call(t, ts.addHandler, map[string]any{"service": "s3", "fields": map[string]any{"storageGB": float64(100)}}, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "S3", cart.Items[0].Service)
	assert.Equal(t, "100 GB storage", cart.Items[0].Specifications)
	assert.InDelta(t, 2.30, cart.Total, 1e-9)
	assert.True(t, cart.ExportEnabled)
	assert.NotEmpty(t, cart.Session)

	call(t, ts.addHandler, map[string]any{"service": "ec2"}, &cart)
	require.Len(t, cart.Items, 2)
	require.Len(t, cart.ByService, 2)
	assert.Equal(t, "EC2", cart.ByService[0].Name)

	var total response.Total
	call(t, ts.totalHandler, nil, &total)
	assert.InDelta(t, 9.89, total.Total, 1e-9)

	call(t, ts.removeHandler, map[string]any{"id": cart.Items[0].ID}, &cart)
	assert.Len(t, cart.Items, 1)

	result := call(t, ts.clearHandler, map[string]any{"confirm": false}, nil)
	assert.True(t, result.IsError)
	assert.Len(t, srv.Cart(cart.Session), 1)

	call(t, ts.clearHandler, map[string]any{"confirm": true}, &cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, string(model.CartEmpty), cart.State)
	assert.False(t, cart.ExportEnabled)
}

func TestAdd_ServerMessage(t *testing.T) {
	ts, srv := newToolset(t)
	srv.Fail("/api/pricing/rds", pricingapitest.Failure{Message: "AWS Pricing client not initialized"})

	result := call(t, ts.addHandler, map[string]any{"service": "rds"}, nil)
	require.True(t, result.IsError)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "AWS Pricing client not initialized")
}

func TestConcurrentFailuresKeepTheirOwnMessage(t *testing.T) {
	ts, srv := newToolset(t)
	srv.Fail("/api/pricing/rds", pricingapitest.Failure{Message: "AWS Pricing client not initialized"})
	srv.Fail("/api/cart/total", pricingapitest.Failure{Message: "Database unavailable"})

	const calls = 20
	texts := make([]string, calls)
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			var request mcp.CallToolRequest
			handler := ts.totalHandler
			if i%2 == 0 {
				request.Params.Arguments = map[string]any{"service": "rds"}
				handler = ts.addHandler
			}
			result, err := handler(context.Background(), request)
			if err != nil || result == nil || len(result.Content) == 0 {
				return
			}
			if text, ok := result.Content[0].(mcp.TextContent); ok {
				texts[i] = text.Text
			}
		}(i)
	}
	wg.Wait()

	for i, text := range texts {
		if i%2 == 0 {
			assert.Contains(t, text, "AWS Pricing client not initialized")
			assert.NotContains(t, text, "Database unavailable")
		} else {
			assert.Contains(t, text, "Database unavailable")
			assert.NotContains(t, text, "AWS Pricing client not initialized")
		}
	}
}

func TestRemove_MissingID(t *testing.T) {
	ts, _ := newToolset(t)

	result := call(t, ts.removeHandler, map[string]any{}, nil)
	assert.True(t, result.IsError)
}
