package smocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fsdevblog/tinyurl/internal/models"
)

type URLMock struct {
	mock.Mock
}

func (u *URLMock) Create(ctx context.Context, rawURL string) (*models.ShortLink, error) {
	args := u.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.ShortLink), args.Error(1) //nolint:wrapcheck,errcheck
}

func (u *URLMock) Resolve(ctx context.Context, code string) (string, error) {
	args := u.Called(ctx, code)
	return args.String(0), args.Error(1) //nolint:wrapcheck
}

func (u *URLMock) List(ctx context.Context) ([]models.ShortLink, error) {
	args := u.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.ShortLink), args.Error(1) //nolint:wrapcheck,errcheck
}

func (u *URLMock) Delete(ctx context.Context, code string) (bool, error) {
	args := u.Called(ctx, code)
	return args.Bool(0), args.Error(1) //nolint:wrapcheck
}

type PingMock struct {
	mock.Mock
}

func (p *PingMock) CheckConnection(ctx context.Context) error {
	return p.Called(ctx).Error(0) //nolint:wrapcheck
}
