package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/elC0mpa/aws-pricing-cart/service/orchestrator"
	"github.com/google/shlex"
	"go.uber.org/zap"
)

// errQuit ends the loop without an error
var errQuit = errors.New("quit")

func NewService(view orchestrator.OrchestratorService, in io.Reader, out io.Writer, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		view:    view,
		scanner: bufio.NewScanner(in),
		out:     out,
		logger:  logger.Named("shell"),
	}
}

// Run reads commands until quit or end of input. Command failures are shown
// in the message area and never stop the loop.
func (s *service) Run(ctx context.Context) error {
	if err := s.view.Start(ctx); err != nil {
		s.logger.Debug("startup", zap.Error(err))
	}
	s.view.Render()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, Prompt)
		if !s.scanner.Scan() {
			fmt.Fprintln(s.out)
			return s.scanner.Err()
		}

		cmd, err := Parse(s.scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		if cmd == nil {
			continue
		}

		if cmd.Action == model.ActionClear {
			cmd.Confirm = s.confirm
		}
		if err := s.view.Orchestrate(ctx, *cmd); err != nil {
			s.logger.Debug("command failed", zap.String("action", string(cmd.Action)), zap.Error(err))
		}
	}
}

// confirm asks on the same input the commands come from
func (s *service) confirm(prompt string) bool {
	fmt.Fprintf(s.out, "%s [y/N] ", prompt)
	if !s.scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s.scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

// Parse turns one input line into a command. Blank lines yield nil.
func Parse(line string) (*model.Command, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %w", line, err)
	}
	if len(words) == 0 {
		return nil, nil
	}

	name, args := strings.ToLower(words[0]), words[1:]
	rest := strings.Join(args, " ")

	switch name {
	case "quit", "exit", "q":
		return nil, errQuit
	case "set":
		if len(args) < 2 {
			return nil, errors.New("usage: set <field> <value>")
		}
		return &model.Command{Action: model.ActionSetField, Field: args[0], Value: strings.Join(args[1:], " ")}, nil
	case "service", "region", "remove":
		if rest == "" {
			return nil, fmt.Errorf("usage: %s <value>", name)
		}
		return &model.Command{Action: model.Action(name), Arg: rest}, nil
	case "form", "quote", "add", "clear", "cart", "export", "instances", "ping", "help":
		return &model.Command{Action: model.Action(name), Arg: rest}, nil
	}

	return nil, fmt.Errorf("unknown command %q, type help", name)
}
