// Package bridge finalizes a finished intake conversation: it persists
// the answers locally, forwards them to the backend, and words the
// closing message for whichever of those succeeded.
package bridge

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sklowrylaw/website/pkg/domain/intake/localstore"
	"github.com/sklowrylaw/website/pkg/domain/intake/script"
)

// Office contact details surfaced in closing messages and links.
const (
	OfficeEmail = "sklowry@sklowrylaw.com"
	OfficePhone = "(940) 765-4992"
)

// Submitter forwards a finished conversation to the backend.
type Submitter interface {
	// SubmitConsultation sends the answers and returns the id the
	// backend assigned to the request.
	SubmitConsultation(ctx context.Context, answers map[string]string) (string, error)
}

// Outcome is everything a surface needs to close the conversation.
type Outcome struct {
	// Confirmation is the closing message to show the visitor.
	Confirmation string

	// MailtoURL and TelURL are fallback contact links, always set.
	MailtoURL string
	TelURL    string

	// Saved reports whether the local store accepted the answers;
	// SaveError is why it did not.
	Saved     bool
	SaveError error

	// Submitted reports whether the backend accepted the answers;
	// RequestId is the backend's id when it did, SubmitError is why
	// it did not.
	Submitted   bool
	RequestId   string
	SubmitError error
}

type Bridge struct {
	store  *localstore.Store
	submit Submitter
}

// New builds a bridge. Either collaborator may be nil, and the
// corresponding step is skipped; the closing message accounts for it.
func New(store *localstore.Store, submit Submitter) *Bridge {
	return &Bridge{store: store, submit: submit}
}

// Finalize runs the post-conversation steps. It never fails outright:
// the local save and the backend submission are each best-effort, and
// the Outcome reports how far the answers got. What went wrong is
// carried on the Outcome so the surface can show it somewhere the
// visitor's closing message is not.
func (b *Bridge) Finalize(ctx context.Context, answers map[string]string) Outcome {
	out := Outcome{
		MailtoURL: mailtoURL(answers),
		TelURL:    telURL(OfficePhone),
	}

	if b.store != nil {
		if _, err := b.store.Append(answers); err == nil {
			out.Saved = true
		} else {
			out.SaveError = fmt.Errorf("saving answers locally: %w", err)
		}
	}

	if b.submit != nil {
		if id, err := b.submit.SubmitConsultation(ctx, answers); err == nil {
			out.Submitted = true
			out.RequestId = id
		} else {
			out.SubmitError = fmt.Errorf("submitting to the office: %w", err)
		}
	}

	out.Confirmation = b.confirmation(answers, out)
	return out
}

func (b *Bridge) confirmation(answers map[string]string, out Outcome) string {
	name := strings.TrimSpace(answers["name"])

	if out.Submitted {
		greeting := "Thank you!"
		if name != "" {
			greeting = fmt.Sprintf("Thank you, %s!", name)
		}
		return greeting + " Your consultation request has been sent to Sharon K. Lowry. " +
			"You can expect a response within one business day."
	}

	reached := "Your request could not be sent right now"
	if out.Saved {
		reached = "Your answers were saved, but the request could not be sent right now"
	}
	return fmt.Sprintf(
		"%s. Please email %s or call %s and Sharon will be glad to help.",
		reached, OfficeEmail, OfficePhone,
	)
}

// mailtoURL drafts an email to the office carrying the conversation
// summary, so a visitor can send it themselves when nothing else worked.
func mailtoURL(answers map[string]string) string {
	subject := "Consultation Request"
	if name := strings.TrimSpace(answers["name"]); name != "" {
		subject = fmt.Sprintf("Consultation Request - %s", name)
	}

	labels := script.Labels()
	lines := []string{}
	for _, q := range script.Consultation() {
		if value := answers[q.Field]; value != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", labels[q.Field], value))
		}
	}

	query := url.Values{}
	query.Set("subject", subject)
	if len(lines) > 0 {
		query.Set("body", strings.Join(lines, "\n"))
	}
	return "mailto:" + OfficeEmail + "?" + query.Encode()
}

// telURL strips formatting down to a dialable tel: link.
func telURL(phone string) string {
	digits := strings.Builder{}
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "tel:+1" + digits.String()
}
