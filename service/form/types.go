package form

import (
	"context"
	"errors"
	"sync"

	"github.com/elC0mpa/aws-pricing-cart/model"
	services "github.com/elC0mpa/aws-pricing-cart/service"
	"go.uber.org/zap"
)

// ErrUnknownField is returned for keys that are not part of the active form
var ErrUnknownField = errors.New("field is not part of the active form")

type service struct {
	instances services.InstanceService
	logger    *zap.Logger

	mu              sync.Mutex
	spec            model.ServiceSpec
	region          string
	values          map[string]string
	instanceOptions []string

	// refresh token; a newer refresh cancels the one in flight
	refreshSeq    uint64
	cancelRefresh context.CancelFunc
}

type FormService interface {
	SelectService(ctx context.Context, kind model.ServiceKind) error
	SetRegion(ctx context.Context, region string) (bool, error)
	Set(key, value string) error
	Get(key string) (string, bool)
	RefreshInstances(ctx context.Context) error
	Service() model.ServiceKind
	Spec() model.ServiceSpec
	Region() string
	Fields() []model.FieldSpec
	InstanceOptions() []string
	Snapshot() model.FormState
}
