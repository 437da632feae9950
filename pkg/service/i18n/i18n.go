package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
)

// DefaultLocale is the fallback locale when neither the group, the
// user, nor the event reports one.
const DefaultLocale = "en"

var supported = []language.Tag{
	language.English,
	language.Russian,
}

// Service resolves locale tags into message printers
type Service struct {
	matcher  language.Matcher
	fallback language.Tag
}

var _ interfaces.Translator = &Service{}

func New() *Service {
	return &Service{
		matcher:  language.NewMatcher(supported),
		fallback: language.English,
	}
}

// Supported returns the list of supported language tags
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supported))
	copy(tags, supported)
	return tags
}

// Translate returns a printer for the best-matching supported locale.
// Unknown or empty tags fall back to English.
func (s *Service) Translate(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		return message.NewPrinter(s.fallback)
	}

	// Match reports the index of the best supported tag; the returned
	// tag itself may carry synthetic extensions, so index into the
	// supported list instead.
	_, idx, conf := s.matcher.Match(tag)
	if conf == language.No {
		return message.NewPrinter(s.fallback)
	}
	return message.NewPrinter(supported[idx])
}
