package render

import (
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"golang.org/x/text/language"
)

// supported viewer locales, the first entry is the fallback
var supportedLocales = []language.Tag{
	language.AmericanEnglish,
	language.German,
	language.French,
	language.Spanish,
}

// translators is indexed like supportedLocales
var translators = []locales.Translator{en.New(), de.New(), fr.New(), es.New()}

var localeMatcher = language.NewMatcher(supportedLocales)

// NegotiateLocale picks the viewer locale from an Accept-Language header.
func NegotiateLocale(acceptLanguage string) language.Tag {
	return supportedLocales[localeIndex(acceptLanguage)]
}

func localeIndex(acceptLanguage string) int {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return 0
	}
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return 0
	}
	return idx
}

// translatorFor returns the CLDR translator of a negotiated tag
func translatorFor(tag language.Tag) locales.Translator {
	for i, t := range supportedLocales {
		if t == tag {
			return translators[i]
		}
	}
	base, _ := tag.Base()
	for i, t := range supportedLocales {
		if b, _ := t.Base(); b == base {
			return translators[i]
		}
	}
	return translators[0]
}

// FormatLongDate renders t in the long date format of the given locale.
func FormatLongDate(t time.Time, tag language.Tag) string {
	if t.IsZero() {
		return ""
	}
	return translatorFor(tag).FmtDateLong(t)
}
