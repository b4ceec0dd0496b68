package export

import (
	"context"
	"errors"

	services "github.com/elC0mpa/aws-pricing-cart/service"
	"go.uber.org/zap"
)

// ErrExportDisabled is returned while the cart has nothing to export
var ErrExportDisabled = errors.New("export disabled: cart is empty")

// MsgExportFailed is shown when the report could not be saved
const MsgExportFailed = "Failed to export report"

// Gate reports whether the cart currently allows exporting
type Gate interface {
	ExportEnabled() bool
}

type service struct {
	reports  services.ReportService
	gate     Gate
	messages services.MessageService
	logger   *zap.Logger
}

type ExportService interface {
	Export(ctx context.Context, dir string) (string, error)
}
