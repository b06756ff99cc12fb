package fakecpanel

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
)

type FakeExecutor struct {
	mock.Mock
}

func (e *FakeExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := e.Called(ctx, name, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}

type FakeAPI struct {
	mock.Mock
}

func (a *FakeAPI) WHMAPI1(ctx context.Context, fn string, args ...string) (*cpanel.WHMResponse, error) {
	callArgs := a.Called(ctx, fn, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).(*cpanel.WHMResponse), callArgs.Error(1)
}

func (a *FakeAPI) UAPI(ctx context.Context, user, module, fn string, args ...string) (*cpanel.Result, error) {
	callArgs := a.Called(ctx, user, module, fn, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).(*cpanel.Result), callArgs.Error(1)
}
