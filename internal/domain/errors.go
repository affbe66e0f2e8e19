package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction marks actions rejected by the rules: wrong phase, wrong actor, ineligible card or job.
	ErrIllegalAction = errors.New("illegal action")
	// ErrDataIntegrity marks references to unknown ids or out-of-range indices.
	ErrDataIntegrity = errors.New("data integrity")
	// ErrGameOver is returned for every mutation after the game has ended.
	ErrGameOver = errors.New("game over")
)

// ActionError carries a short human-readable reason next to its kind.
type ActionError struct {
	Kind   error
	Reason string
}

func (e *ActionError) Error() string {
	return e.Kind.Error() + ": " + e.Reason
}

func (e *ActionError) Unwrap() error {
	return e.Kind
}

// Illegal returns an ErrIllegalAction with the given reason.
func Illegal(format string, args ...any) error {
	return &ActionError{Kind: ErrIllegalAction, Reason: fmt.Sprintf(format, args...)}
}

// Integrity returns an ErrDataIntegrity with the given reason.
func Integrity(format string, args ...any) error {
	return &ActionError{Kind: ErrDataIntegrity, Reason: fmt.Sprintf(format, args...)}
}

// Reason extracts the user-facing reason of err.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return err.Error()
}
