package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ostazi/chat-core/internal/model"
)

func TestWelcomeCoversAllKindsAndLocales(t *testing.T) {
	kinds := []model.ChannelKind{model.ChannelSupport, model.ChannelAIAssistant, model.ChannelCounterparty}
	locales := []model.Locale{model.LocaleArabic, model.LocaleEnglish, model.LocaleUrdu}

	for _, kind := range kinds {
		for _, locale := range locales {
			assert.NotEmpty(t, Welcome(kind, locale), "welcome for %s/%s", kind, locale)
			assert.NotEmpty(t, AlertTitle(kind, locale), "alert title for %s/%s", kind, locale)
		}
	}
}

func TestUnknownLocaleFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, Welcome(model.ChannelSupport, model.LocaleEnglish), Welcome(model.ChannelSupport, model.Locale("fr")))
	assert.Equal(t, Fallback(model.LocaleEnglish), Fallback(model.Locale("")))
}

func TestAcknowledgementDefaultsToSupport(t *testing.T) {
	got := Acknowledgement(model.ChannelAIAssistant, model.LocaleEnglish)
	assert.Equal(t, Acknowledgement(model.ChannelSupport, model.LocaleEnglish), got)
}
