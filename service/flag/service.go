package flag

import (
	"fmt"
	"strings"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/spf13/cobra"
)

func NewService() *service {
	return &service{}
}

// Command builds the aws-cart command tree. Every subcommand hands its
// parsed flags and the matching view command to run.
func (s *service) Command(run Runner) *cobra.Command {
	root := &cobra.Command{
		Use:           "aws-cart",
		Short:         "Price AWS services and collect them in a cost cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), s.flags, nil)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&s.flags.APIURL, "api-url", "", "pricing backend URL (default $AWS_CART_API_URL or http://localhost:5000)")
	pf.StringVar(&s.flags.Session, "session", "", "backend session to reuse, so separate invocations share a cart")
	pf.BoolVarP(&s.flags.Verbose, "verbose", "v", false, "log backend requests to stderr")
	pf.BoolVar(&s.flags.NoBanner, "no-banner", false, "do not print the banner")

	root.AddCommand(
		s.formCommand("quote", "Fetch pricing for a service configuration", model.ActionQuote, run),
		s.formCommand("add", "Price a service configuration and add it to the cart", model.ActionAdd, run),
		s.simpleCommand("cart", "Show the cart", model.ActionList, run),
		s.simpleCommand("ping", "Check the pricing backend", model.ActionPing, run),
		s.removeCommand(run),
		s.clearCommand(run),
		s.exportCommand(run),
		s.instancesCommand(run),
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), s.flags, nil)
			},
		},
	)

	return root
}

func (s *service) formCommand(use, short string, action model.Action, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := ParseFields(s.flags.Fields); err != nil {
				return err
			}
			return run(cmd.Context(), s.flags, &model.Command{Action: action})
		},
	}

	cmd.Flags().StringVarP(&s.flags.Service, "service", "s", string(model.ServiceEC2), "service to price: ec2, rds, s3, vpc, alb, route53")
	cmd.Flags().StringVarP(&s.flags.Region, "region", "r", "", "pricing region (default $AWS_CART_REGION or "+model.DefaultRegion+")")
	cmd.Flags().StringArrayVar(&s.flags.Fields, "set", nil, "form field as key=value, repeatable")

	return cmd
}

func (s *service) simpleCommand(use, short string, action model.Action, run Runner) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), s.flags, &model.Command{Action: action})
		},
	}
}

func (s *service) removeCommand(run Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), s.flags, &model.Command{Action: model.ActionRemove, Arg: args[0]})
		},
	}
}

func (s *service) clearCommand(run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), s.flags, &model.Command{Action: model.ActionClear})
		},
	}
	cmd.Flags().BoolVarP(&s.flags.Yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (s *service) exportCommand(run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the cart as a CSV report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), s.flags, &model.Command{Action: model.ActionExport, Arg: s.flags.ExportDir})
		},
	}
	cmd.Flags().StringVarP(&s.flags.ExportDir, "dir", "d", "", "directory to save the report in (default $AWS_CART_EXPORT_DIR or .)")
	return cmd
}

func (s *service) instancesCommand(run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "List the EC2 instance types priced in a region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), s.flags, &model.Command{Action: model.ActionInstances})
		},
	}
	cmd.Flags().StringVarP(&s.flags.Region, "region", "r", "", "pricing region")
	return cmd
}

// ParseFields turns repeated key=value pairs into form values. Later pairs
// win.
func ParseFields(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--set %q: %w", pair, ErrMalformedField)
		}
		values[key] = strings.TrimSpace(value)
	}
	return values, nil
}
