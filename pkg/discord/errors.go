package discord

import (
	"errors"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/ports/output"
)

// ErrorMessage resolves err to a localized user-facing message. Validation
// errors use their own key, other domain errors their code and anything else
// the generic message.
func ErrorMessage(tr output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return tr.T(locale, "validation."+verr.Key, verr.Data)
	}
	code := domain.Code(err)
	switch code {
	case "":
		return tr.T(locale, "error.generic", nil)
	case "publish_failed":
		return tr.T(locale, "error.publish_failed", map[string]any{"Reason": publishReason(err)})
	}
	return tr.T(locale, "error."+code, nil)
}

// publishReason is the provider's error text without the domain prefix.
func publishReason(err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !errors.Is(e, domain.ErrPublishFailure) {
				return EscapeMarkdown(Truncate(e.Error(), 200))
			}
		}
	}
	return EscapeMarkdown(Truncate(err.Error(), 200))
}
