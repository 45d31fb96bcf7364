// Package i18n translates the messages of JSON error responses.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages,
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to
// DefaultLocale and then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supported reports whether locale has translations.
func (t *Translator) Supported(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale returns the first supported language of the Accept-Language
// header, or DefaultLocale. Quality values are ignored; the header order
// is taken as the preference order.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	translator := GetTranslator()
	for _, part := range strings.Split(acceptLang, ",") {
		lang := strings.TrimSpace(strings.Split(part, ";")[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if translator.Supported(lang) {
			return lang
		}
	}

	return DefaultLocale
}

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:    "Invalid request",
		ErrKeyInternalError:     "An unexpected error occurred",
		ErrKeyNotFound:          "Not found",
		ErrKeyRateLimitExceeded: "Too many requests, please try again later",
		ErrKeyTimeout:           "The request timed out",
		ErrKeyUnavailable:       "Service unavailable",
	},
	"pt": {
		ErrKeyInvalidRequest:    "Requisição inválida",
		ErrKeyInternalError:     "Ocorreu um erro inesperado",
		ErrKeyNotFound:          "Não encontrado",
		ErrKeyRateLimitExceeded: "Muitas requisições, tente novamente mais tarde",
		ErrKeyTimeout:           "A requisição expirou",
		ErrKeyUnavailable:       "Serviço indisponível",
	},
	"nl": {
		ErrKeyInvalidRequest:    "Ongeldig verzoek",
		ErrKeyInternalError:     "Er is een onverwachte fout opgetreden",
		ErrKeyNotFound:          "Niet gevonden",
		ErrKeyRateLimitExceeded: "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyTimeout:           "Het verzoek is verlopen",
		ErrKeyUnavailable:       "Dienst niet beschikbaar",
	},
	"de": {
		ErrKeyInvalidRequest:    "Ungültige Anfrage",
		ErrKeyInternalError:     "Ein unerwarteter Fehler ist aufgetreten",
		ErrKeyNotFound:          "Nicht gefunden",
		ErrKeyRateLimitExceeded: "Zu viele Anfragen, bitte später erneut versuchen",
		ErrKeyTimeout:           "Zeitüberschreitung der Anfrage",
		ErrKeyUnavailable:       "Dienst nicht verfügbar",
	},
}
