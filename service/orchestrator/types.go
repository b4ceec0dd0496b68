package orchestrator

import (
	"context"
	"io"
	"sync"

	"github.com/elC0mpa/aws-pricing-cart/model"
	services "github.com/elC0mpa/aws-pricing-cart/service"
	"github.com/elC0mpa/aws-pricing-cart/service/cart"
	"github.com/elC0mpa/aws-pricing-cart/service/export"
	"github.com/elC0mpa/aws-pricing-cart/service/form"
	"go.uber.org/zap"
)

// User-facing messages owned by the view
const (
	MsgInstancesFailed = "Failed to load instance types"
	MsgAddInFlight     = "Item is already being added"
	MsgClearCancelled  = "Clear cancelled"
	MsgConnectFailed   = "Cannot reach the pricing backend"
)

type service struct {
	form       form.FormService
	cart       cart.CartService
	exporter   export.ExportService
	quotes     services.QuoteService
	adapter    services.CartItemAdapter
	connection services.ConnectionService
	messages   services.MessageService
	logger     *zap.Logger

	out       io.Writer
	exportDir string
	session   func() string

	beforeRender func()

	// one update/render cycle at a time
	mu      sync.Mutex
	status  *model.ConnectionStatus
	quote   *model.Quote
	preview *model.CartItem
}

// Deps groups the collaborators of the view state
type Deps struct {
	Form       form.FormService
	Cart       cart.CartService
	Exporter   export.ExportService
	Quotes     services.QuoteService
	Adapter    services.CartItemAdapter
	Connection services.ConnectionService
	Messages   services.MessageService
	Logger     *zap.Logger
}

type OrchestratorService interface {
	Start(ctx context.Context) error
	Prepare(ctx context.Context, kind model.ServiceKind, region string, values map[string]string) error
	Session() string
	Orchestrate(ctx context.Context, cmd model.Command) error
	Render()
}
