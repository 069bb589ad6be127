package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	handlers "github.com/sklowrylaw/website/cmd/lawofficed/handlers"
	httptestutil "github.com/sklowrylaw/website/internal/testutils/http"
	apiconsult "github.com/sklowrylaw/website/pkg/api/types/consultations"
	"github.com/sklowrylaw/website/pkg/domain/consultation"
	consultmocks "github.com/sklowrylaw/website/pkg/domain/consultation/db/mock"
	notifymocks "github.com/sklowrylaw/website/pkg/domain/notification/mock"
)

func httpStatusOf(err error) int {
	httpErr := &echo.HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return 0
}

func storedRecord(id int, spec consultation.NewRecord) consultation.Record {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return consultation.Record{
		Id:           id,
		Name:         spec.Name,
		Email:        spec.Email,
		Phone:        spec.Phone,
		LegalService: spec.LegalService,
		Message:      spec.Message,
		Status:       consultation.Unread,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestIntakeHandler(t *testing.T) {
	t.Run("it rejects submissions without name or email", func(t *testing.T) {
		for name, body := range map[string]string{
			"missing name":     `{"email": "pat@example.com"}`,
			"missing email":    `{"name": "Pat Example"}`,
			"blank name":       `{"name": "   ", "email": "pat@example.com"}`,
			"empty body":       `{}`,
			"json but no text": `{"name": "", "email": ""}`,
		} {
			t.Run(name, func(t *testing.T) {
				mdb := consultmocks.NewConsultationInterface()
				e := echo.New()
				ctx, _ := httptestutil.Post(
					e, "/api/consultation-requests", strings.NewReader(body),
					httptestutil.ContentType("application/json"),
				)

				testee := handlers.IntakeHandler(mdb, nil)
				err := testee(ctx)
				if httpStatusOf(err) != http.StatusBadRequest {
					t.Errorf("expected 400, got %v", err)
				}
				if got := mdb.Calls.Register.Times(); got != 0 {
					t.Errorf("Register was called %d times", got)
				}
			})
		}
	})

	t.Run("it stores submissions as unread and answers the new id", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Register = func(_ context.Context, spec consultation.NewRecord) (consultation.Record, error) {
			return storedRecord(7, spec), nil
		}
		mnotify := notifymocks.NewNotifier()
		mnotify.Impl.NotifyConsultation = func(context.Context, consultation.Record) error {
			return nil
		}

		e := echo.New()
		body := `{
			"name": "Pat Example",
			"email": "pat@example.com",
			"phone": "(940) 555-1234",
			"legalService": "Probate Administration",
			"message": "Please call me.",
			"urgency": "This week"
		}`
		ctx, resp := httptestutil.Post(
			e, "/api/consultation-requests", strings.NewReader(body),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.IntakeHandler(mdb, mnotify)
		if err := testee(ctx); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusOK {
			t.Errorf("status = %d", resp.Code)
		}

		ack := apiconsult.IntakeResponse{}
		if err := json.Unmarshal(resp.Body.Bytes(), &ack); err != nil {
			t.Fatal(err)
		}
		if !ack.Success || ack.RequestId != 7 {
			t.Errorf("unexpected ack: %+v", ack)
		}

		if got := mdb.Calls.Register.Times(); got != 1 {
			t.Fatalf("Register was called %d times", got)
		}
		spec := mdb.Calls.Register[0]
		if spec.Name != "Pat Example" || spec.Email != "pat@example.com" {
			t.Errorf("unexpected spec: %+v", spec)
		}
		if spec.Phone == nil || *spec.Phone != "(940) 555-1234" {
			t.Errorf("unexpected phone: %v", spec.Phone)
		}
		if spec.LegalService != "Probate Administration" {
			t.Errorf("unexpected service: %q", spec.LegalService)
		}
		if want := "Message:\nPlease call me.\n\nUrgency:\nThis week"; spec.Message != want {
			t.Errorf("message = %q, want %q", spec.Message, want)
		}

		select {
		case rec := <-mnotify.Notified:
			if rec.Id != 7 {
				t.Errorf("notified about record %d", rec.Id)
			}
		case <-time.After(time.Second):
			t.Error("no notification was dispatched")
		}
	})

	t.Run("it stores a placeholder when no detail fields are sent", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Register = func(_ context.Context, spec consultation.NewRecord) (consultation.Record, error) {
			return storedRecord(8, spec), nil
		}

		e := echo.New()
		ctx, _ := httptestutil.Post(
			e, "/api/consultation-requests",
			strings.NewReader(`{"name": "Pat", "email": "pat@example.com"}`),
			httptestutil.ContentType("application/json"),
		)

		if err := handlers.IntakeHandler(mdb, nil)(ctx); err != nil {
			t.Fatal(err)
		}

		spec := mdb.Calls.Register[0]
		if spec.Message != apiconsult.NoDetails {
			t.Errorf("message = %q", spec.Message)
		}
		if spec.LegalService != apiconsult.DefaultService {
			t.Errorf("service = %q", spec.LegalService)
		}
		if spec.Phone != nil {
			t.Errorf("phone = %v", spec.Phone)
		}
	})

	t.Run("equal payloads register separate requests", func(t *testing.T) {
		nextId := 100
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Register = func(_ context.Context, spec consultation.NewRecord) (consultation.Record, error) {
			nextId += 1
			return storedRecord(nextId, spec), nil
		}

		e := echo.New()
		body := `{"name": "Pat", "email": "pat@example.com"}`
		ids := []int{}
		for range [2]struct{}{} {
			ctx, resp := httptestutil.Post(
				e, "/api/consultation-requests", strings.NewReader(body),
				httptestutil.ContentType("application/json"),
			)
			if err := handlers.IntakeHandler(mdb, nil)(ctx); err != nil {
				t.Fatal(err)
			}
			ack := apiconsult.IntakeResponse{}
			if err := json.Unmarshal(resp.Body.Bytes(), &ack); err != nil {
				t.Fatal(err)
			}
			ids = append(ids, ack.RequestId)
		}

		if mdb.Calls.Register.Times() != 2 || ids[0] == ids[1] {
			t.Errorf("expected two distinct requests, got ids %v", ids)
		}
	})

	t.Run("notification failure does not touch the response", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Register = func(_ context.Context, spec consultation.NewRecord) (consultation.Record, error) {
			return storedRecord(9, spec), nil
		}
		mnotify := notifymocks.NewNotifier()
		mnotify.Impl.NotifyConsultation = func(context.Context, consultation.Record) error {
			return errors.New("smtp: connection refused")
		}

		e := echo.New()
		ctx, resp := httptestutil.Post(
			e, "/api/consultation-requests",
			strings.NewReader(`{"name": "Pat", "email": "pat@example.com"}`),
			httptestutil.ContentType("application/json"),
		)

		if err := handlers.IntakeHandler(mdb, mnotify)(ctx); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusOK {
			t.Errorf("status = %d", resp.Code)
		}

		select {
		case <-mnotify.Notified:
		case <-time.After(time.Second):
			t.Error("notification was not attempted")
		}
	})

	t.Run("storage failure answers 500", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Register = func(context.Context, consultation.NewRecord) (consultation.Record, error) {
			return consultation.Record{}, errors.New("fake db error")
		}

		e := echo.New()
		ctx, _ := httptestutil.Post(
			e, "/api/consultation-requests",
			strings.NewReader(`{"name": "Pat", "email": "pat@example.com"}`),
			httptestutil.ContentType("application/json"),
		)

		err := handlers.IntakeHandler(mdb, nil)(ctx)
		if httpStatusOf(err) != http.StatusInternalServerError {
			t.Errorf("expected 500, got %v", err)
		}
	})
}
