package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	services "github.com/elC0mpa/aws-pricing-cart/service"
	"github.com/elC0mpa/aws-pricing-cart/service/pricingapi"
	"go.uber.org/zap"
)

func NewService(reports services.ReportService, gate Gate, messages services.MessageService, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		reports:  reports,
		gate:     gate,
		messages: messages,
		logger:   logger.Named("export"),
	}
}

// Export downloads the backend report into dir under the file name the
// backend suggests and returns the written path. A partial download never
// replaces an existing report.
func (s *service) Export(ctx context.Context, dir string) (string, error) {
	if !s.gate.ExportEnabled() {
		s.messages.Info("Add items to the cart before exporting")
		return "", ErrExportDisabled
	}
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, ".aws-cart-export-*")
	if err != nil {
		s.messages.Error(MsgExportFailed)
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	name, err := s.reports.ExportCSV(ctx, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close report file: %w", closeErr)
	}
	if err != nil {
		text := MsgExportFailed
		if apiErr, ok := pricingapi.AsAPIError(err); ok && apiErr.Message != "" {
			text = apiErr.Message
		}
		s.messages.Error(text)
		return "", err
	}

	path := filepath.Join(dir, reportName(name))
	if err := os.Rename(tmp.Name(), path); err != nil {
		s.messages.Error(MsgExportFailed)
		return "", fmt.Errorf("save report: %w", err)
	}

	s.logger.Debug("report saved", zap.String("path", path))
	s.messages.Success(fmt.Sprintf("Report saved to %s", path))

	return path, nil
}

// reportName keeps only the last element of the server's filename, falling
// back to the default when nothing usable remains
func reportName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == ".." || strings.ContainsAny(base, `/\`) {
		return pricingapi.DefaultFilename
	}
	return base
}
