package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/elC0mpa/aws-pricing-cart/service/config"
	"github.com/elC0mpa/aws-pricing-cart/service/flag"
	"github.com/elC0mpa/aws-pricing-cart/service/orchestrator"
	"github.com/elC0mpa/aws-pricing-cart/service/shell"
	"github.com/elC0mpa/aws-pricing-cart/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flagService := flag.NewService()
	root := flagService.Command(run)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, flags model.Flags, cmd *model.Command) error {
	logger, err := newLogger(flags.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	cfgService := config.NewService()
	cfg, err := cfgService.GetConfig(flags)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if !flags.NoBanner && (cmd == nil || interactive) {
		utils.DrawBanner(os.Stdout)
	}

	interactiveOut := interactive && cmd != nil
	view, err := orchestrator.NewFromConfig(cfg, os.Stdout, logger, orchestrator.WithBeforeRender(func() {
		if interactiveOut {
			utils.StopSpinner()
		}
	}))
	if err != nil {
		return err
	}

	if cmd == nil {
		return shell.NewService(view, os.Stdin, os.Stdout, logger).Run(ctx)
	}

	if cmd.Action == model.ActionQuote || cmd.Action == model.ActionAdd {
		kind, err := model.ParseServiceKind(flags.Service)
		if err != nil {
			return err
		}
		values, err := flag.ParseFields(flags.Fields)
		if err != nil {
			return err
		}
		if err := view.Prepare(ctx, kind, "", values); err != nil {
			return err
		}
	}

	if cmd.Action == model.ActionClear && !flags.Yes {
		if !interactive {
			return fmt.Errorf("refusing to clear the cart without --yes")
		}
		cmd.Confirm = confirmStdin
	}

	if interactiveOut && cmd.Action != model.ActionClear {
		utils.StartSpinner(os.Stderr, "Contacting pricing backend")
	}
	err = view.Orchestrate(ctx, *cmd)
	utils.StopSpinner()

	if cmd.Action == model.ActionAdd && err == nil && cfg.Session == "" {
		fmt.Fprintf(os.Stderr, "Reuse this cart with --session %s or AWS_CART_SESSION=%s\n", view.Session(), view.Session())
	}
	return err
}

func confirmStdin(prompt string) bool {
	fmt.Fprintf(os.Stdout, "%s [y/N] ", prompt)
	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
