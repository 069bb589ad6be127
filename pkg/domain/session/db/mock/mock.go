package mocks

import (
	"context"
	"errors"

	kdbmock "github.com/sklowrylaw/website/pkg/domain/internal/db/mock"
	"github.com/sklowrylaw/website/pkg/domain/session"
	kdbsess "github.com/sklowrylaw/website/pkg/domain/session/db"
	"github.com/sklowrylaw/website/pkg/domain/user"
)

type SessionInterface struct {
	Impl struct {
		New    func(context.Context, user.User) (session.Session, error)
		Get    func(context.Context, string) (session.Session, error)
		Delete func(context.Context, string) error
	}
	Calls struct {
		New    kdbmock.CallLog[user.User]
		Get    kdbmock.CallLog[string]
		Delete kdbmock.CallLog[string]
	}
}

var _ kdbsess.SessionInterface = &SessionInterface{}

func NewSessionInterface() *SessionInterface {
	return &SessionInterface{}
}

func (m *SessionInterface) New(ctx context.Context, u user.User) (session.Session, error) {
	m.Calls.New = append(m.Calls.New, u)
	if m.Impl.New != nil {
		return m.Impl.New(ctx, u)
	}

	panic(errors.New("should not be called"))
}

func (m *SessionInterface) Get(ctx context.Context, id string) (session.Session, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}

	panic(errors.New("should not be called"))
}

func (m *SessionInterface) Delete(ctx context.Context, id string) error {
	m.Calls.Delete = append(m.Calls.Delete, id)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}

	panic(errors.New("should not be called"))
}
