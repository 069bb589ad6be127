package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apiconsult "github.com/sklowrylaw/website/pkg/api/types/consultations"
	apierr "github.com/sklowrylaw/website/pkg/api/types/errors"
	"github.com/sklowrylaw/website/pkg/domain/consultation"
	consultdb "github.com/sklowrylaw/website/pkg/domain/consultation/db"
	domerr "github.com/sklowrylaw/website/pkg/domain/errors"
)

func composeDetail(rec consultation.Record) apiconsult.Detail {
	det := apiconsult.Detail{
		Id:           rec.Id,
		Name:         rec.Name,
		Email:        rec.Email,
		LegalService: rec.LegalService,
		Message:      rec.Message,
		Notes:        rec.Notes,
		Status:       string(rec.Status),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if rec.Phone != nil {
		det.Phone = *rec.Phone
	}
	return det
}

// FindConsultationsHandler lists every consultation request, newest
// first, for the admin dashboard.
func FindConsultationsHandler(dbcon consultdb.ConsultationInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		recs, err := dbcon.Find(c.Request().Context())
		if err != nil {
			return apierr.InternalServerError(err)
		}

		details := make([]apiconsult.Detail, len(recs))
		for i, rec := range recs {
			details[i] = composeDetail(rec)
		}
		return c.JSON(http.StatusOK, details)
	}
}

// UpdateConsultationHandler changes the status and/or notes of one
// consultation request.
func UpdateConsultationHandler(dbcon consultdb.ConsultationInterface, idParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param(idParam))
		if err != nil {
			return apierr.BadRequest("the request id should be an integer", err)
		}

		req := apiconsult.UpdateRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return apierr.BadRequest("can not understand the requested json", err)
		}
		if req.Status == nil && req.Notes == nil {
			return apierr.BadRequest("nothing to update: send status and/or notes", nil)
		}
		if req.Status != nil && *req.Status == "" {
			return apierr.BadRequest("status may not be empty", nil)
		}

		delta := consultation.Delta{Notes: req.Notes}
		if req.Status != nil {
			status := consultation.Status(*req.Status)
			delta.Status = &status
		}

		rec, err := dbcon.Update(c.Request().Context(), id, delta)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound()
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, composeDetail(rec))
	}
}

// DeleteConsultationHandler removes one consultation request.
func DeleteConsultationHandler(dbcon consultdb.ConsultationInterface, idParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param(idParam))
		if err != nil {
			return apierr.BadRequest("the request id should be an integer", err)
		}

		err = dbcon.Delete(c.Request().Context(), id)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound()
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
