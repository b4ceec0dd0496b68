package quote

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/elC0mpa/aws-pricing-cart/service/pricingapi"
	"github.com/elC0mpa/aws-pricing-cart/service/pricingapi/pricingapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPricing struct {
	entries []model.PricingEntry
	err     error
}

func (s stubPricing) GetPricing(ctx context.Context, kind model.ServiceKind, payload map[string]any) ([]model.PricingEntry, error) {
	return s.entries, s.err
}

func formState(kind model.ServiceKind, overrides map[string]string) model.FormState {
	values := model.MustSpecFor(kind).Defaults()
	for k, v := range overrides {
		values[k] = v
	}
	return model.FormState{Service: kind, Region: model.DefaultRegion, Values: values}
}

func TestBuildRequest(t *testing.T) {
	svc := NewService(stubPricing{}, zap.NewNop())

	tests := []struct {
		kind      model.ServiceKind
		overrides map[string]string
		want      map[string]any
	}{
		{
			kind:      model.ServiceEC2,
			overrides: map[string]string{model.FieldInstanceType: "t3.micro", model.FieldQuantity: "2"},
			want: map[string]any{
				"instanceType": "t3.micro", "region": model.DefaultRegion,
				"operatingSystem": "Linux", "tenancy": "Shared",
			},
		},
		{
			kind: model.ServiceRDS,
			want: map[string]any{
				"instanceType": "db.t3.micro", "region": model.DefaultRegion,
				"databaseEngine": "MySQL", "deploymentOption": "Single-AZ",
			},
		},
		{
			kind:      model.ServiceS3,
			overrides: map[string]string{model.FieldStorageGB: "100"},
			want: map[string]any{
				"storageClass": "General Purpose", "region": model.DefaultRegion, "storageGB": float64(100),
			},
		},
		{
			kind:      model.ServiceVPC,
			overrides: map[string]string{model.FieldQuantity: "3"},
			want:      map[string]any{"component": "NatGateway", "region": model.DefaultRegion, "quantity": 3},
		},
		{
			kind:      model.ServiceALB,
			overrides: map[string]string{model.FieldQuantity: "many"},
			want:      map[string]any{"region": model.DefaultRegion, "quantity": 1},
		},
		{
			kind: model.ServiceRoute53,
			want: map[string]any{"component": "HostedZone", "quantity": 1},
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			got, err := svc.BuildRequest(formState(tc.kind, tc.overrides))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildRequest_EveryServiceMapped(t *testing.T) {
	svc := NewService(stubPricing{}, zap.NewNop())
	for _, kind := range model.AllServices {
		_, err := svc.BuildRequest(formState(kind, nil))
		assert.NoError(t, err, kind)
	}

	_, err := svc.BuildRequest(model.FormState{Service: "lambda"})
	assert.Error(t, err)
}

func TestQuote_FirstEntry(t *testing.T) {
	srv := pricingapitest.NewServer(t)
	srv.SetPricing(model.ServiceEC2, []model.PricingEntry{
		{InstanceType: "t3.micro", VCPU: "2"},
		{InstanceType: "t3.micro", VCPU: "4"},
	})
	api, err := pricingapi.NewService(model.Config{APIURL: srv.URL, SessionCookie: "session", Timeout: 5 * time.Second}, zap.NewNop())
	require.NoError(t, err)

	q, err := NewService(api, zap.NewNop()).Quote(context.Background(), formState(model.ServiceEC2, nil))
	require.NoError(t, err)
	require.True(t, q.HasData())
	assert.Equal(t, model.Attribute("2"), q.Entry.VCPU)
	assert.Equal(t, 2, q.Count)

	payloads := srv.Payloads(model.ServiceEC2)
	require.Len(t, payloads, 1)
	assert.Equal(t, "t2.micro", payloads[0]["instanceType"])
}

func TestQuote_NoData(t *testing.T) {
	svc := NewService(stubPricing{}, zap.NewNop())

	q, err := svc.Quote(context.Background(), formState(model.ServiceVPC, nil))
	require.NoError(t, err)
	assert.False(t, q.HasData())
	assert.Empty(t, q.Reason)
}

func TestQuote_ServerFailureIsNoData(t *testing.T) {
	svc := NewService(stubPricing{err: &pricingapi.APIError{Status: http.StatusInternalServerError, Message: "throttled"}}, zap.NewNop())

	q, err := svc.Quote(context.Background(), formState(model.ServiceS3, nil))
	require.NoError(t, err)
	assert.False(t, q.HasData())
	assert.Equal(t, "throttled", q.Reason)
}

func TestQuote_TransportFailureRaises(t *testing.T) {
	svc := NewService(stubPricing{err: errors.Join(pricingapi.ErrTransport, errors.New("connection refused"))}, zap.NewNop())

	_, err := svc.Quote(context.Background(), formState(model.ServiceALB, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, pricingapi.ErrTransport)
}
