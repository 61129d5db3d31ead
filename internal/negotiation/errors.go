package negotiation

import (
	"errors"
	"fmt"
)

// ErrPreconditionFailed is wrapped by every rejection below, so callers can
// tell "nothing happened" apart from infrastructure failures.
var ErrPreconditionFailed = errors.New("precondition failed")

var (
	ErrNoActiveChat         = fmt.Errorf("%w: no active chat", ErrPreconditionFailed)
	ErrChatNotFound         = fmt.Errorf("%w: chat not found", ErrPreconditionFailed)
	ErrOfferNotFound        = fmt.Errorf("%w: offer not found", ErrPreconditionFailed)
	ErrOfferMismatch        = fmt.Errorf("%w: offer does not belong to chat", ErrPreconditionFailed)
	ErrCompanyNotFound      = fmt.Errorf("%w: company not found", ErrPreconditionFailed)
	ErrCounterpartyNotFound = fmt.Errorf("%w: counterparty not found", ErrPreconditionFailed)
	ErrNotParticipant       = fmt.Errorf("%w: company is not a chat participant", ErrPreconditionFailed)
	ErrEmptyMessage         = fmt.Errorf("%w: empty message", ErrPreconditionFailed)
	ErrChatClosed           = fmt.Errorf("%w: chat is closed", ErrPreconditionFailed)
	ErrNotConfirmed         = fmt.Errorf("%w: completion not confirmed", ErrPreconditionFailed)
	ErrAssistantDisabled    = fmt.Errorf("%w: assistant is not configured", ErrPreconditionFailed)
)
