package orchestrator

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/elC0mpa/aws-pricing-cart/service/cart"
	"github.com/elC0mpa/aws-pricing-cart/service/form"
	"github.com/elC0mpa/aws-pricing-cart/service/pricingapi/pricingapitest"
	"github.com/elC0mpa/aws-pricing-cart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView(t *testing.T) (*service, *pricingapitest.Server, *bytes.Buffer) {
	t.Helper()

	srv := pricingapitest.NewServer(t)
	var out bytes.Buffer

	view, err := NewFromConfig(model.Config{
		APIURL:        srv.URL,
		Region:        model.DefaultRegion,
		SessionCookie: pricingapitest.SessionCookie,
		Timeout:       5 * time.Second,
		MessageTTL:    time.Minute,
		ExportDir:     t.TempDir(),
	}, &out, nil)
	require.NoError(t, err)

	return view, srv, &out
}

func run(t *testing.T, view *service, out *bytes.Buffer, cmd model.Command) (string, error) {
	t.Helper()
	out.Reset()
	err := view.Orchestrate(context.Background(), cmd)
	return out.String(), err
}

func TestStart(t *testing.T) {
	view, srv, _ := newView(t)

	require.NoError(t, view.Start(context.Background()))

	require.NotNil(t, view.status)
	assert.True(t, view.status.Connected)
	assert.Equal(t, []string{"m5.large", "t2.micro", "t3.micro"}, view.form.InstanceOptions())
	assert.Len(t, srv.Requests("/api/cart/items"), 1)
	assert.Len(t, srv.Requests("/api/cart/total"), 1)
}

func TestStart_BackendDown(t *testing.T) {
	view, srv, _ := newView(t)
	srv.Close()

	require.Error(t, view.Start(context.Background()))
	require.NotNil(t, view.status)
	assert.False(t, view.status.Connected)
	assert.NotNil(t, view.messages.Current())
}

func TestStart_CartFailureKeepsSiblings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/test-connection", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	})
	mux.HandleFunc("/api/available-instances", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"instances":["c5.large"]}`))
	})
	mux.HandleFunc("/api/cart/items", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Internal server error"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	view, err := NewFromConfig(model.Config{
		APIURL:     srv.URL,
		Region:     model.DefaultRegion,
		Timeout:    5 * time.Second,
		MessageTTL: time.Minute,
		ExportDir:  t.TempDir(),
	}, &out, nil)
	require.NoError(t, err)

	require.Error(t, view.Start(context.Background()))

	require.NotNil(t, view.status)
	assert.True(t, view.status.Connected)
	assert.Equal(t, []string{"c5.large"}, view.form.InstanceOptions())
	msg := view.messages.Current()
	require.NotNil(t, msg)
	assert.Equal(t, model.MessageError, msg.Level)
	assert.Equal(t, "Internal server error", msg.Text)
}

func TestQuoteThenAdd(t *testing.T) {
	view, srv, out := newView(t)

	_, err := run(t, view, out, model.Command{Action: model.ActionSetField, Field: model.FieldInstanceType, Value: "t3.micro"})
	require.NoError(t, err)
	_, err = run(t, view, out, model.Command{Action: model.ActionSetField, Field: model.FieldQuantity, Value: "2"})
	require.NoError(t, err)

	rendered, err := run(t, view, out, model.Command{Action: model.ActionQuote})
	require.NoError(t, err)
	assert.Contains(t, rendered, "t3.micro")
	assert.Contains(t, rendered, "$15.18/mo")
	require.NotNil(t, view.preview)

	rendered, err = run(t, view, out, model.Command{Action: model.ActionAdd})
	require.NoError(t, err)
	assert.Contains(t, rendered, cart.MsgAdded)
	assert.Contains(t, rendered, "$0.0208/hr")
	assert.Contains(t, rendered, utils.ExportEnabledText)
	assert.Len(t, srv.Requests("/api/cart/add"), 1)
}

func TestSelectServiceReplacesForm(t *testing.T) {
	view, _, out := newView(t)

	_, err := run(t, view, out, model.Command{Action: model.ActionSetField, Field: model.FieldTenancy, Value: "Dedicated"})
	require.NoError(t, err)

	rendered, err := run(t, view, out, model.Command{Action: model.ActionSelectService, Arg: "S3"})
	require.NoError(t, err)
	assert.Contains(t, rendered, "Storage Class")
	assert.NotContains(t, rendered, "Tenancy")

	_, err = run(t, view, out, model.Command{Action: model.ActionSetField, Field: model.FieldTenancy, Value: "Shared"})
	assert.ErrorIs(t, err, form.ErrUnknownField)
	require.NotNil(t, view.messages.Current())
	assert.Equal(t, model.MessageError, view.messages.Current().Level)
}

func TestRegionChangeRefreshesOnlyEC2(t *testing.T) {
	view, srv, out := newView(t)

	_, err := run(t, view, out, model.Command{Action: model.ActionSetRegion, Arg: "EU (Ireland)"})
	require.NoError(t, err)
	assert.Len(t, srv.Requests("/api/available-instances"), 1)

	_, err = run(t, view, out, model.Command{Action: model.ActionSelectService, Arg: "rds"})
	require.NoError(t, err)
	_, err = run(t, view, out, model.Command{Action: model.ActionSetRegion, Arg: "US West (Oregon)"})
	require.NoError(t, err)
	assert.Len(t, srv.Requests("/api/available-instances"), 1)
}

func TestAddPricingFailure(t *testing.T) {
	view, srv, out := newView(t)
	srv.Fail("/api/pricing/ec2", pricingapitest.Failure{Message: "AWS Pricing client not initialized"})

	rendered, err := run(t, view, out, model.Command{Action: model.ActionAdd})
	assert.ErrorIs(t, err, cart.ErrNoData)
	assert.Contains(t, rendered, "AWS Pricing client not initialized")
	assert.Empty(t, srv.Requests("/api/cart/add"))

	// the next action clears the message area
	_, err = run(t, view, out, model.Command{Action: model.ActionShowForm})
	require.NoError(t, err)
	assert.Nil(t, view.messages.Current())
}

func TestClearAndExport(t *testing.T) {
	view, _, out := newView(t)

	_, err := run(t, view, out, model.Command{Action: model.ActionAdd})
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = run(t, view, out, model.Command{Action: model.ActionExport, Arg: dir})
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "aws_cost_estimate.csv"))
	require.NoError(t, err)

	rendered, err := run(t, view, out, model.Command{Action: model.ActionClear, Confirm: func(string) bool { return false }})
	require.NoError(t, err)
	assert.Contains(t, rendered, MsgClearCancelled)
	assert.Len(t, view.cart.Items(), 1)

	rendered, err = run(t, view, out, model.Command{Action: model.ActionClear, Confirm: func(string) bool { return true }})
	require.NoError(t, err)
	assert.Contains(t, rendered, utils.EmptyCartText)
	assert.Contains(t, rendered, utils.ExportDisabledText)

	_, err = run(t, view, out, model.Command{Action: model.ActionExport, Arg: t.TempDir()})
	assert.Error(t, err)
}

func TestUnknownAction(t *testing.T) {
	view, _, out := newView(t)

	_, err := run(t, view, out, model.Command{Action: "teleport"})
	require.Error(t, err)
	require.NotNil(t, view.messages.Current())
}

func TestPrepare(t *testing.T) {
	view, srv, out := newView(t)
	ctx := context.Background()

	require.NoError(t, view.Prepare(ctx, model.ServiceS3, "EU (Ireland)", map[string]string{
		model.FieldStorageGB: "250",
	}))
	assert.Equal(t, model.ServiceS3, view.form.Service())
	assert.Equal(t, "EU (Ireland)", view.form.Region())
	assert.Empty(t, srv.Requests("/api/available-instances"))

	_, err := run(t, view, out, model.Command{Action: model.ActionAdd})
	require.NoError(t, err)

	payloads := srv.Payloads(model.ServiceS3)
	require.Len(t, payloads, 1)
	assert.Equal(t, "EU (Ireland)", payloads[0]["region"])
	assert.EqualValues(t, 250, payloads[0][model.FieldStorageGB])
	assert.NotEmpty(t, view.Session())

	err = view.Prepare(ctx, model.ServiceS3, "", map[string]string{model.FieldTenancy: "Shared"})
	assert.ErrorIs(t, err, form.ErrUnknownField)
}
