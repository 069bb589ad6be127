package notification

import (
	"context"

	"github.com/sklowrylaw/website/pkg/domain/consultation"
)

// Interface dispatches a notification about a newly stored consultation
// request.
//
// Dispatch is best-effort by contract: the intake handler fires it after
// the row is committed and only logs failures. Implementations should
// respect ctx for their own deadline but must not assume anyone is
// waiting on the result.
type Interface interface {
	NotifyConsultation(ctx context.Context, rec consultation.Record) error
}

// FormTypeDescription names the originating form for a service type,
// used in notification subjects and bodies.
func FormTypeDescription(serviceType string) string {
	if serviceType == "" {
		return "General Contact"
	}

	descriptions := map[string]string{
		"Wills & Estate Planning": "Wills & Estate Planning",
		"Will & Estate Planning":  "Wills & Estate Planning",
		"Estate Planning":         "Wills & Estate Planning",
		"Probate Administration":  "Probate",
		"Probate":                 "Probate Administration",
		"Applications for Heirship": "Heirship Application",
		"Heirship":                  "Heirship Application",
		"Powers of Attorney":        "Financial Powers of Attorney",
		"Power of Attorney":         "Powers of Attorney",
		"Medical Powers of Attorney and Advance Directives": "Medical Powers of Attorney and Advance Directives",
		"Guardianship":              "Guardianship Application",
		"Guardianship Applications": "Guardianship Application",
		"Small Estate Affidavits":   "Small Estate Affidavit",
		"General Consultation":      "General Contact",
	}

	if d, ok := descriptions[serviceType]; ok {
		return d
	}
	return "General Contact"
}
