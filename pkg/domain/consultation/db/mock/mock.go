package mocks

import (
	"context"
	"errors"

	"github.com/sklowrylaw/website/pkg/domain/consultation"
	kdbcons "github.com/sklowrylaw/website/pkg/domain/consultation/db"
	kdbmock "github.com/sklowrylaw/website/pkg/domain/internal/db/mock"
)

type UpdateArgs struct {
	Id    int
	Delta consultation.Delta
}

type ConsultationInterface struct {
	Impl struct {
		Register func(context.Context, consultation.NewRecord) (consultation.Record, error)
		Find     func(context.Context) ([]consultation.Record, error)
		Update   func(context.Context, int, consultation.Delta) (consultation.Record, error)
		Delete   func(context.Context, int) error
	}
	Calls struct {
		Register kdbmock.CallLog[consultation.NewRecord]
		Find     kdbmock.CallLog[struct{}]
		Update   kdbmock.CallLog[UpdateArgs]
		Delete   kdbmock.CallLog[int]
	}
}

var _ kdbcons.ConsultationInterface = &ConsultationInterface{}

func NewConsultationInterface() *ConsultationInterface {
	return &ConsultationInterface{}
}

func (m *ConsultationInterface) Register(ctx context.Context, spec consultation.NewRecord) (consultation.Record, error) {
	m.Calls.Register = append(m.Calls.Register, spec)
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, spec)
	}

	panic(errors.New("should not be called"))
}

func (m *ConsultationInterface) Find(ctx context.Context) ([]consultation.Record, error) {
	m.Calls.Find = append(m.Calls.Find, struct{}{})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx)
	}

	panic(errors.New("should not be called"))
}

func (m *ConsultationInterface) Update(ctx context.Context, id int, delta consultation.Delta) (consultation.Record, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateArgs{Id: id, Delta: delta})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, id, delta)
	}

	panic(errors.New("should not be called"))
}

func (m *ConsultationInterface) Delete(ctx context.Context, id int) error {
	m.Calls.Delete = append(m.Calls.Delete, id)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}

	panic(errors.New("should not be called"))
}
