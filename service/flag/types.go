package flag

import (
	"context"
	"errors"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/spf13/cobra"
)

// ErrMalformedField is returned for --set values without a key=value shape
var ErrMalformedField = errors.New("expected key=value")

// Runner executes one parsed invocation. A nil command starts the shell.
type Runner func(ctx context.Context, flags model.Flags, cmd *model.Command) error

type service struct {
	flags model.Flags
}

type FlagService interface {
	Command(run Runner) *cobra.Command
}
