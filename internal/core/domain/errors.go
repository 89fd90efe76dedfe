package domain

import "errors"

var (
	ErrActionInFlight      = errors.New("another action is already in progress")
	ErrInvalidForm         = errors.New("invalid form")
	ErrUnknownProfileField = errors.New("unknown profile field")
)

// FormError is a client-side validation failure, reported before any network call.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

func (e *FormError) Unwrap() error { return ErrInvalidForm }

// NewFormError returns a FormError carrying msg.
func NewFormError(msg string) error {
	return &FormError{Message: msg}
}

// UserMessage extracts the message to show inline for err. Errors that know
// their user-facing text (form errors, backend errors) supply it; anything else
// falls back to the generic message.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var fe *FormError
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	if errors.Is(err, ErrActionInFlight) {
		return "Please wait for the current action to finish."
	}
	if errors.Is(err, ErrUnknownProfileField) {
		return err.Error()
	}
	return fallback
}
