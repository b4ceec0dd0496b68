package shell

import (
	"bufio"
	"context"
	"io"

	"github.com/elC0mpa/aws-pricing-cart/service/orchestrator"
	"go.uber.org/zap"
)

const Prompt = "aws-cart> "

type service struct {
	view    orchestrator.OrchestratorService
	scanner *bufio.Scanner
	out     io.Writer
	logger  *zap.Logger
}

type ShellService interface {
	Run(ctx context.Context) error
}
