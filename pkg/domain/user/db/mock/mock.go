package mocks

import (
	"context"
	"errors"

	kdbmock "github.com/sklowrylaw/website/pkg/domain/internal/db/mock"
	"github.com/sklowrylaw/website/pkg/domain/user"
	kdbuser "github.com/sklowrylaw/website/pkg/domain/user/db"
)

type UserInterface struct {
	Impl struct {
		GetByLogin      func(context.Context, string) (user.User, error)
		EnsureFederated func(context.Context, user.FederatedIdentity) (user.User, error)
	}
	Calls struct {
		GetByLogin      kdbmock.CallLog[string]
		EnsureFederated kdbmock.CallLog[user.FederatedIdentity]
	}
}

var _ kdbuser.UserInterface = &UserInterface{}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

func (m *UserInterface) GetByLogin(ctx context.Context, login string) (user.User, error) {
	m.Calls.GetByLogin = append(m.Calls.GetByLogin, login)
	if m.Impl.GetByLogin != nil {
		return m.Impl.GetByLogin(ctx, login)
	}

	panic(errors.New("should not be called"))
}

func (m *UserInterface) EnsureFederated(ctx context.Context, ident user.FederatedIdentity) (user.User, error) {
	m.Calls.EnsureFederated = append(m.Calls.EnsureFederated, ident)
	if m.Impl.EnsureFederated != nil {
		return m.Impl.EnsureFederated(ctx, ident)
	}

	panic(errors.New("should not be called"))
}
