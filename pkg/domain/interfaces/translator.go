package interfaces

import "golang.org/x/text/message"

// Translator resolves a locale tag into a message printer used to
// render notification text.
type Translator interface {
	Translate(locale string) *message.Printer
}
