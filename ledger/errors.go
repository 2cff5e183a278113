package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies ledger failures so callers can branch on the class of
// failure instead of matching message text.
type Kind int

const (
	KindNotFound Kind = iota
	KindInvalidState
	KindInsufficientFunds
	KindInconsistency
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindInconsistency:
		return "ledger_inconsistency"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func IsKind(err error, kind Kind) bool {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind == kind
	}
	return false
}

// ErrPayoutNotFound is returned by Store implementations when the payout row
// does not exist. The ledger translates it into a KindNotFound Error.
var ErrPayoutNotFound = errors.New("payout not found")

// ErrPartnerNotFound is returned by Store implementations when the payout
// exists but its partner row is missing. Also KindNotFound to callers.
var ErrPartnerNotFound = errors.New("partner not found")
