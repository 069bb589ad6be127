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
	kdberr "github.com/sklowrylaw/website/pkg/domain/errors/dberrors/postgres"
)

func TestFindConsultationsHandler(t *testing.T) {
	t.Run("it lists records newest first, as the store returns them", func(t *testing.T) {
		older := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
		newer := older.Add(72 * time.Hour)
		phone := "(940) 555-1234"
		records := []consultation.Record{
			{
				Id: 2, Name: "Quinn", Email: "quinn@example.com", Phone: &phone,
				LegalService: "Probate Administration", Message: "Message:\nhello",
				Status: consultation.Unread, CreatedAt: newer, UpdatedAt: newer,
			},
			{
				Id: 1, Name: "Pat", Email: "pat@example.com",
				LegalService: "General Consultation", Message: apiconsult.NoDetails,
				Notes: "called back", Status: consultation.Read,
				CreatedAt: older, UpdatedAt: older,
			},
		}

		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Find = func(context.Context) ([]consultation.Record, error) {
			return records, nil
		}

		e := echo.New()
		ctx, resp := httptestutil.Get(e, "/api/consultation-requests")
		if err := handlers.FindConsultationsHandler(mdb)(ctx); err != nil {
			t.Fatal(err)
		}

		got := []apiconsult.Detail{}
		if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Id != 2 || got[1].Id != 1 {
			t.Fatalf("unexpected order: %+v", got)
		}
		if got[0].Phone != phone || got[1].Phone != "" {
			t.Errorf("unexpected phones: %q, %q", got[0].Phone, got[1].Phone)
		}
		if got[1].Notes != "called back" || got[1].Status != "read" {
			t.Errorf("unexpected detail: %+v", got[1])
		}
	})

	t.Run("storage failure answers 500", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Find = func(context.Context) ([]consultation.Record, error) {
			return nil, errors.New("fake db error")
		}

		e := echo.New()
		ctx, _ := httptestutil.Get(e, "/api/consultation-requests")
		err := handlers.FindConsultationsHandler(mdb)(ctx)
		if httpStatusOf(err) != http.StatusInternalServerError {
			t.Errorf("expected 500, got %v", err)
		}
	})
}

func TestUpdateConsultationHandler(t *testing.T) {
	newCtx := func(e *echo.Echo, id string, body string) (echo.Context, *json.Decoder) {
		ctx, resp := httptestutil.Put(
			e, "/api/consultation-requests/"+id, strings.NewReader(body),
			httptestutil.ContentType("application/json"),
		)
		ctx.SetParamNames("id")
		ctx.SetParamValues(id)
		return ctx, json.NewDecoder(resp.Body)
	}

	t.Run("it updates status and notes", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Update = func(_ context.Context, id int, delta consultation.Delta) (consultation.Record, error) {
			now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
			rec := consultation.Record{
				Id: id, Name: "Pat", Email: "pat@example.com",
				LegalService: "Probate Administration", Message: "m",
				Status: consultation.Unread, CreatedAt: now.Add(-time.Hour), UpdatedAt: now,
			}
			if delta.Status != nil {
				rec.Status = *delta.Status
			}
			if delta.Notes != nil {
				rec.Notes = *delta.Notes
			}
			return rec, nil
		}

		e := echo.New()
		ctx, dec := newCtx(e, "5", `{"status": "read", "notes": "left a voicemail"}`)
		if err := handlers.UpdateConsultationHandler(mdb, "id")(ctx); err != nil {
			t.Fatal(err)
		}

		got := apiconsult.Detail{}
		if err := dec.Decode(&got); err != nil {
			t.Fatal(err)
		}
		if got.Id != 5 || got.Status != "read" || got.Notes != "left a voicemail" {
			t.Errorf("unexpected detail: %+v", got)
		}

		args := mdb.Calls.Update[0]
		if args.Id != 5 || args.Delta.Status == nil || *args.Delta.Status != consultation.Read {
			t.Errorf("unexpected update args: %+v", args)
		}
	})

	t.Run("absent fields are left alone", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Update = func(_ context.Context, id int, delta consultation.Delta) (consultation.Record, error) {
			return consultation.Record{Id: id, Status: consultation.Unread}, nil
		}

		e := echo.New()
		ctx, _ := newCtx(e, "5", `{"notes": "waiting on documents"}`)
		if err := handlers.UpdateConsultationHandler(mdb, "id")(ctx); err != nil {
			t.Fatal(err)
		}

		args := mdb.Calls.Update[0]
		if args.Delta.Status != nil {
			t.Errorf("status should not be touched: %+v", args.Delta)
		}
		if args.Delta.Notes == nil || *args.Delta.Notes != "waiting on documents" {
			t.Errorf("unexpected notes: %v", args.Delta.Notes)
		}
	})

	t.Run("bad requests never reach the store", func(t *testing.T) {
		for name, testcase := range map[string]struct {
			id   string
			body string
		}{
			"non-numeric id": {id: "seven", body: `{"status": "read"}`},
			"empty delta":    {id: "5", body: `{}`},
			"empty status":   {id: "5", body: `{"status": ""}`},
			"broken json":    {id: "5", body: `{`},
		} {
			t.Run(name, func(t *testing.T) {
				mdb := consultmocks.NewConsultationInterface()
				e := echo.New()
				ctx, _ := newCtx(e, testcase.id, testcase.body)

				err := handlers.UpdateConsultationHandler(mdb, "id")(ctx)
				if httpStatusOf(err) != http.StatusBadRequest {
					t.Errorf("expected 400, got %v", err)
				}
				if mdb.Calls.Update.Times() != 0 {
					t.Error("the store was called")
				}
			})
		}
	})

	t.Run("unknown id answers 404", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Update = func(context.Context, int, consultation.Delta) (consultation.Record, error) {
			return consultation.Record{}, kdberr.Missing{Table: "consultation_requests", Identity: "id 404"}
		}

		e := echo.New()
		ctx, _ := newCtx(e, "404", `{"status": "read"}`)
		err := handlers.UpdateConsultationHandler(mdb, "id")(ctx)
		if httpStatusOf(err) != http.StatusNotFound {
			t.Errorf("expected 404, got %v", err)
		}
	})
}

func TestDeleteConsultationHandler(t *testing.T) {
	newCtx := func(e *echo.Echo, id string) echo.Context {
		ctx, _ := httptestutil.Delete(e, "/api/consultation-requests/"+id)
		ctx.SetParamNames("id")
		ctx.SetParamValues(id)
		return ctx
	}

	t.Run("it deletes the record", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Delete = func(context.Context, int) error { return nil }

		e := echo.New()
		ctx := newCtx(e, "5")
		if err := handlers.DeleteConsultationHandler(mdb, "id")(ctx); err != nil {
			t.Fatal(err)
		}
		if mdb.Calls.Delete.Times() != 1 || mdb.Calls.Delete[0] != 5 {
			t.Errorf("unexpected calls: %v", mdb.Calls.Delete)
		}
	})

	t.Run("unknown id answers 404", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		mdb.Impl.Delete = func(context.Context, int) error {
			return kdberr.Missing{Table: "consultation_requests", Identity: "id 404"}
		}

		e := echo.New()
		err := handlers.DeleteConsultationHandler(mdb, "id")(newCtx(e, "404"))
		if httpStatusOf(err) != http.StatusNotFound {
			t.Errorf("expected 404, got %v", err)
		}
	})

	t.Run("non-numeric id answers 400", func(t *testing.T) {
		mdb := consultmocks.NewConsultationInterface()
		e := echo.New()
		err := handlers.DeleteConsultationHandler(mdb, "id")(newCtx(e, "seven"))
		if httpStatusOf(err) != http.StatusBadRequest {
			t.Errorf("expected 400, got %v", err)
		}
	})
}
