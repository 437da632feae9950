package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/text/message"

	"github.com/rallykit/rallybot/pkg/service/i18n"
)

// Sentinel errors for the coordination engine. All of them except
// ErrDelivery surface to the requester as a rejection message with no
// state change; ErrDelivery is recovered locally during fan-out.
var (
	ErrValidation = goerr.New("validation failed")
	ErrConflict   = goerr.New("conflicting record exists")
	ErrNotFound   = goerr.New("referenced record not found")
	ErrPermission = goerr.New("not enough rights")
	ErrDelivery   = goerr.New("notification delivery failed")
)

// Context keys for error values
const (
	ReasonKey     = "reason"
	ActivityKey   = "activity"
	LoginKey      = "login"
	MaxLengthKey  = "max_length"
	CommandKey    = "command"
	RecipientKey  = "recipient"
)

// Validation reasons attached to ErrValidation
const (
	ReasonNameEmpty   = "name_empty"
	ReasonNameTooLong = "name_too_long"
	ReasonNameCharset = "name_charset"
)

// UserMessage renders a user-facing rejection text for a failed
// operation. Unknown errors yield the generic failure message so
// internal details never leak into chat.
func UserMessage(p *message.Printer, err error) string {
	var ge *goerr.Error
	values := map[string]any{}
	if errors.As(err, &ge) {
		values = ge.Values()
	}

	switch {
	case errors.Is(err, ErrValidation):
		switch values[ReasonKey] {
		case ReasonNameTooLong:
			return p.Sprintf(i18n.MsgNameTooLong, MaxActivityNameLength)
		case ReasonNameCharset:
			return p.Sprintf(i18n.MsgNameBadCharset)
		default:
			return p.Sprintf(i18n.MsgNameEmpty)
		}
	case errors.Is(err, ErrConflict):
		name, _ := values[ActivityKey].(string)
		return p.Sprintf(i18n.MsgActivityExists, name)
	case errors.Is(err, ErrNotFound):
		name, _ := values[ActivityKey].(string)
		return p.Sprintf(i18n.MsgActivityNotFound, name)
	case errors.Is(err, ErrPermission):
		return p.Sprintf(i18n.MsgNotEnoughRights)
	default:
		return p.Sprintf(i18n.MsgGenericFailure)
	}
}
