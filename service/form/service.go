package form

import (
	"context"
	"fmt"
	"slices"

	"github.com/elC0mpa/aws-pricing-cart/model"
	services "github.com/elC0mpa/aws-pricing-cart/service"
	"go.uber.org/zap"
)

// NewService starts on the EC2 form in region. Instance options keep their
// static defaults until RefreshInstances runs.
func NewService(instances services.InstanceService, region string, logger *zap.Logger) *service {
	if region == "" {
		region = model.DefaultRegion
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		instances: instances,
		logger:    logger.Named("form"),
		region:    region,
	}
	s.replace(model.MustSpecFor(model.ServiceEC2))

	return s
}

// SelectService swaps the whole form. Nothing entered for the previous
// service survives.
func (s *service) SelectService(ctx context.Context, kind model.ServiceKind) error {
	spec, err := model.SpecFor(kind)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.replace(spec)
	s.mu.Unlock()

	if kind != model.ServiceEC2 {
		return nil
	}
	return s.RefreshInstances(ctx)
}

// SetRegion changes the region and reports whether the instance list was
// refreshed, which only happens on the EC2 form.
func (s *service) SetRegion(ctx context.Context, region string) (bool, error) {
	s.mu.Lock()
	s.region = region
	isEC2 := s.spec.Kind == model.ServiceEC2
	s.mu.Unlock()

	if !isEC2 {
		return false, nil
	}
	return true, s.RefreshInstances(ctx)
}

// Set stores a raw value. Ranges are not checked; the backend decides.
func (s *service) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.spec.Field(key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	s.values[key] = value
	return nil
}

func (s *service) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.spec.Field(key); !ok {
		return "", false
	}
	return s.values[key], true
}

// RefreshInstances reloads the EC2 instance types for the current region.
// Calling it again cancels the previous request and its result is dropped.
func (s *service) RefreshInstances(ctx context.Context) error {
	s.mu.Lock()
	if s.cancelRefresh != nil {
		s.cancelRefresh()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.refreshSeq++
	seq := s.refreshSeq
	s.cancelRefresh = cancel
	region := s.region
	s.mu.Unlock()
	defer cancel()

	instances, err := s.instances.GetAvailableInstances(ctx, region)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.refreshSeq {
		s.logger.Debug("dropping superseded instance refresh", zap.Uint64("seq", seq), zap.String("region", region))
		return nil
	}
	s.cancelRefresh = nil

	if err != nil {
		return fmt.Errorf("refresh instance types for %s: %w", region, err)
	}
	if s.spec.Kind != model.ServiceEC2 || len(instances) == 0 {
		return nil
	}

	s.instanceOptions = slices.Clone(instances)
	if !slices.Contains(instances, s.values[model.FieldInstanceType]) {
		s.values[model.FieldInstanceType] = instances[0]
	}

	s.logger.Debug("instance types refreshed", zap.String("region", region), zap.Int("count", len(instances)))
	return nil
}

func (s *service) Service() model.ServiceKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec.Kind
}

func (s *service) Spec() model.ServiceSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

func (s *service) Region() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region
}

// Fields returns the active form's inputs, with dynamic options filled in
func (s *service) Fields() []model.FieldSpec {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := slices.Clone(s.spec.Fields)
	for i, f := range fields {
		if f.Dynamic {
			fields[i].Options = slices.Clone(s.instanceOptions)
		}
	}
	return fields
}

func (s *service) InstanceOptions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.instanceOptions)
}

func (s *service) Snapshot() model.FormState {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make(map[string]string, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return model.FormState{Service: s.spec.Kind, Region: s.region, Values: values}
}

// replace must be called with mu held
func (s *service) replace(spec model.ServiceSpec) {
	if s.cancelRefresh != nil {
		s.cancelRefresh()
		s.cancelRefresh = nil
	}
	s.refreshSeq++

	s.spec = spec
	s.values = spec.Defaults()
	s.instanceOptions = nil
	for _, f := range spec.Fields {
		if f.Dynamic {
			s.instanceOptions = slices.Clone(f.Options)
		}
	}
}
