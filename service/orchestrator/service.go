package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/elC0mpa/aws-pricing-cart/service/cart"
	"github.com/elC0mpa/aws-pricing-cart/service/form"
	"github.com/elC0mpa/aws-pricing-cart/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func NewService(deps Deps, out io.Writer, exportDir string) *service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		form:       deps.Form,
		cart:       deps.Cart,
		exporter:   deps.Exporter,
		quotes:     deps.Quotes,
		adapter:    deps.Adapter,
		connection: deps.Connection,
		messages:   deps.Messages,
		logger:     logger.Named("orchestrator"),
		out:        out,
		exportDir:  exportDir,
	}
}

// Start checks the backend, loads the cart and the instance list at once.
// The returned error is the first failure; the view stays usable either way.
// A failing request never cancels its siblings.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var g errgroup.Group

	g.Go(func() error {
		if err := s.ping(ctx); err != nil {
			s.logger.Warn("pricing backend unreachable", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		return s.cart.LoadCart(ctx)
	})
	if s.form.Service() == model.ServiceEC2 {
		g.Go(func() error {
			return s.refreshInstances(ctx)
		})
	}

	err := g.Wait()
	if err != nil {
		s.logger.Warn("startup refresh incomplete", zap.Error(err))
	}
	return err
}

// Prepare fills the form without rendering, for one-shot commands. Keys
// that the service does not have are rejected.
func (s *service) Prepare(ctx context.Context, kind model.ServiceKind, region string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind != "" && kind != s.form.Service() {
		if err := s.form.SelectService(ctx, kind); err != nil {
			return err
		}
	}
	if region != "" && region != s.form.Region() {
		if _, err := s.form.SetRegion(ctx, region); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.form.Set(k, values[k]); err != nil {
			return err
		}
	}

	s.clearQuote()
	return nil
}

// Session returns the backend session owning the cart, once one exists
func (s *service) Session() string {
	if s.session == nil {
		return ""
	}
	return s.session()
}

// Orchestrate runs one update for cmd and renders the result. The message
// area is cleared before every update.
func (s *service) Orchestrate(ctx context.Context, cmd model.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages.Clear()
	err := s.update(ctx, cmd)
	if err != nil {
		s.logger.Debug("command failed", zap.String("action", string(cmd.Action)), zap.Error(err))
	}

	s.render(cmd.Action)
	return err
}

// Render draws the whole view
func (s *service) Render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	utils.DrawConnection(s.out, s.status)
	utils.DrawMessage(s.out, s.messages.Current())
	s.drawFormOrQuote()
	s.drawCart()
}

func (s *service) update(ctx context.Context, cmd model.Command) error {
	switch cmd.Action {
	case model.ActionSelectService:
		kind, err := model.ParseServiceKind(cmd.Arg)
		if err != nil {
			s.messages.Error(fmt.Sprintf("Unknown service %q", cmd.Arg))
			return err
		}
		s.clearQuote()
		if err := s.form.SelectService(ctx, kind); err != nil {
			s.messages.Error(MsgInstancesFailed)
			return err
		}
		return nil

	case model.ActionSetRegion:
		s.clearQuote()
		if _, err := s.form.SetRegion(ctx, cmd.Arg); err != nil {
			s.messages.Error(MsgInstancesFailed)
			return err
		}
		return nil

	case model.ActionSetField:
		if err := s.form.Set(cmd.Field, cmd.Value); err != nil {
			if errors.Is(err, form.ErrUnknownField) {
				s.messages.Error(fmt.Sprintf("%s has no field %q", s.form.Spec().Label, cmd.Field))
			}
			return err
		}
		s.clearQuote()
		return nil

	case model.ActionShowForm, model.ActionHelp:
		return nil

	case model.ActionQuote:
		return s.fetchQuote(ctx)

	case model.ActionAdd:
		err := s.cart.AddToCart(ctx, s.form.Snapshot())
		if errors.Is(err, cart.ErrAddInFlight) {
			s.messages.Info(MsgAddInFlight)
		}
		return err

	case model.ActionRemove:
		if cmd.Arg == "" {
			s.messages.Error("remove needs an item id")
			return errors.New("missing item id")
		}
		return s.cart.RemoveFromCart(ctx, cmd.Arg)

	case model.ActionClear:
		err := s.cart.ClearCart(ctx, cmd.Confirm)
		if errors.Is(err, cart.ErrDeclined) {
			s.messages.Info(MsgClearCancelled)
			return nil
		}
		return err

	case model.ActionList:
		return s.cart.LoadCart(ctx)

	case model.ActionExport:
		dir := cmd.Arg
		if dir == "" {
			dir = s.exportDir
		}
		if err := s.cart.LoadCart(ctx); err != nil {
			return err
		}
		_, err := s.exporter.Export(ctx, dir)
		return err

	case model.ActionInstances:
		return s.refreshInstances(ctx)

	case model.ActionPing:
		return s.ping(ctx)
	}

	s.messages.Error(fmt.Sprintf("Unknown command %q", cmd.Action))
	return fmt.Errorf("unknown action %q", cmd.Action)
}

func (s *service) fetchQuote(ctx context.Context) error {
	s.clearQuote()

	state := s.form.Snapshot()
	q, err := s.quotes.Quote(ctx, state)
	if err != nil {
		s.messages.Error(cart.MsgFetchFailed)
		return err
	}

	s.quote = q
	if !q.HasData() {
		text := cart.MsgNoData
		if q.Reason != "" {
			text = q.Reason
		}
		s.messages.Error(text)
		return nil
	}

	item, err := s.adapter.FromPricing(*q.Entry, state)
	if err != nil {
		s.logger.Debug("quote has no usable price", zap.Error(err))
		return nil
	}
	s.preview = &item
	return nil
}

func (s *service) refreshInstances(ctx context.Context) error {
	if err := s.form.RefreshInstances(ctx); err != nil {
		s.messages.Error(MsgInstancesFailed)
		return err
	}
	return nil
}

// ping records the connection status; an unreachable backend is a status,
// not a failure of the command
func (s *service) ping(ctx context.Context) error {
	status, err := s.connection.TestConnection(ctx)
	if err != nil {
		s.status = &model.ConnectionStatus{Connected: false, Message: MsgConnectFailed}
		s.messages.Error(MsgConnectFailed)
		return err
	}
	s.status = status
	return nil
}

func (s *service) clearQuote() {
	s.quote = nil
	s.preview = nil
}

func (s *service) render(action model.Action) {
	if s.beforeRender != nil {
		s.beforeRender()
	}
	utils.DrawMessage(s.out, s.messages.Current())

	switch action {
	case model.ActionSelectService, model.ActionSetRegion, model.ActionSetField, model.ActionShowForm, model.ActionQuote:
		s.drawFormOrQuote()
	case model.ActionAdd, model.ActionRemove, model.ActionClear, model.ActionList:
		s.drawCart()
	case model.ActionInstances:
		utils.DrawInstances(s.out, s.form.Region(), s.form.InstanceOptions())
	case model.ActionPing:
		utils.DrawConnection(s.out, s.status)
	case model.ActionHelp:
		utils.DrawHelp(s.out)
	}
}

func (s *service) drawFormOrQuote() {
	if s.quote != nil {
		utils.DrawQuote(s.out, *s.quote, s.preview)
		return
	}
	utils.DrawForm(s.out, s.form.Spec(), s.form.Fields(), s.form.Snapshot())
}

func (s *service) drawCart() {
	items := s.cart.Items()
	utils.DrawCartTable(s.out, items, s.cart.Total())
	utils.DrawServiceChart(s.out, items)
}
