package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rsvpbot/internal/infrastructure/i18n"
)

func TestTranslator(t *testing.T) {
	tr := i18n.NewTranslator("en")

	assert.Equal(t, "❌ Event not found.", tr.T("en-US", "error.event_not_found", nil))
	assert.Equal(t, "❌ Событие не найдено.", tr.T("ru", "error.event_not_found", nil))
	assert.Equal(t, "✅ Joining (3)", tr.T("", "button.joining", map[string]any{"Count": 3}))
	assert.Equal(t, "❌ The title must be at most 100 characters.", tr.T("fr", "validation.title_too_long", map[string]any{"Max": 100}))
	assert.Equal(t, "no.such.key", tr.T("en", "no.such.key", nil))
	assert.Empty(t, tr.T("en", "", nil))
}
