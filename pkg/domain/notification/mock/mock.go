package mocks

import (
	"context"
	"errors"

	"github.com/sklowrylaw/website/pkg/domain/consultation"
	kdbmock "github.com/sklowrylaw/website/pkg/domain/internal/db/mock"
	"github.com/sklowrylaw/website/pkg/domain/notification"
)

type Notifier struct {
	Impl struct {
		NotifyConsultation func(context.Context, consultation.Record) error
	}
	Calls struct {
		NotifyConsultation kdbmock.CallLog[consultation.Record]
	}

	// Notified receives one element per call, so tests can wait for
	// fire-and-forget dispatches without polling.
	Notified chan consultation.Record
}

var _ notification.Interface = &Notifier{}

func NewNotifier() *Notifier {
	return &Notifier{Notified: make(chan consultation.Record, 16)}
}

func (m *Notifier) NotifyConsultation(ctx context.Context, rec consultation.Record) error {
	m.Calls.NotifyConsultation = append(m.Calls.NotifyConsultation, rec)
	defer func() {
		select {
		case m.Notified <- rec:
		default:
		}
	}()
	if m.Impl.NotifyConsultation != nil {
		return m.Impl.NotifyConsultation(ctx, rec)
	}

	panic(errors.New("should not be called"))
}
