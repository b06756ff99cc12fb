package fakeaccounts

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nimaam/cpanel-exporter/pkg/accounts"
)

type FakeDirectory struct {
	mock.Mock
}

func (d *FakeDirectory) ListUsers(ctx context.Context) ([]string, error) {
	args := d.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type FakeIdentityResolver struct {
	mock.Mock
}

func (r *FakeIdentityResolver) Resolve(ctx context.Context, user string) accounts.Identity {
	args := r.Called(ctx, user)
	return args.Get(0).(accounts.Identity)
}
