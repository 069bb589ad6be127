package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apiconsult "github.com/sklowrylaw/website/pkg/api/types/consultations"
	apierr "github.com/sklowrylaw/website/pkg/api/types/errors"
	"github.com/sklowrylaw/website/pkg/domain/consultation"
	consultdb "github.com/sklowrylaw/website/pkg/domain/consultation/db"
	"github.com/sklowrylaw/website/pkg/domain/notification"
)

// notifyTimeout bounds a single notification dispatch. The HTTP
// response never waits on it.
const notifyTimeout = 30 * time.Second

// IntakeHandler accepts consultation submissions from every site
// surface: the contact forms, the chat widget and the consult CLI all
// post the same shape here.
func IntakeHandler(dbcon consultdb.ConsultationInterface, notifier notification.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiconsult.IntakeRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return apierr.BadRequest("can not understand the requested json", err)
		}

		name := strings.TrimSpace(req.Name)
		email := strings.TrimSpace(req.Email)
		if name == "" || email == "" {
			return apierr.BadRequest("name and email are required", nil)
		}

		spec := consultation.NewRecord{
			Name:         name,
			Email:        email,
			LegalService: req.Service(),
			Message:      req.ComposeMessage(),
		}
		if phone := strings.TrimSpace(req.Phone); phone != "" {
			spec.Phone = &phone
		}

		rec, err := dbcon.Register(ctx, spec)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		if notifier != nil {
			logger := c.Logger()
			go func() {
				nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
				defer cancel()
				if err := notifier.NotifyConsultation(nctx, rec); err != nil {
					logger.Errorf(
						"notification for consultation request %d failed (the request is saved): %s",
						rec.Id, err,
					)
				}
			}()
		}

		return c.JSON(http.StatusOK, apiconsult.IntakeResponse{
			Success:   true,
			Message:   "Request submitted successfully",
			RequestId: rec.Id,
		})
	}
}
