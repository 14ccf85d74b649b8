package simpledocument

import "fmt"

// allowedTransitions is the explicit status change table used by
// ValidateStatusChange. RECEIVED never appears: it is resolved before a
// record is persisted, so no persisted document can transition from or to
// it. PROCESSED is terminal. REJECTED is not terminal; a rejected document
// may be re-validated after the underlying problem is fixed.
var allowedTransitions = map[DocumentStatus][]DocumentStatus{
	StatusValidated: {StatusProcessed, StatusRejected},
	StatusRejected:  {StatusValidated},
	StatusProcessed: {},
}

// ParseDocumentStatus converts a raw string into a DocumentStatus, rejecting
// values outside the persisted state machine.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch DocumentStatus(s) {
	case StatusValidated, StatusRejected, StatusProcessed:
		return DocumentStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// ValidateStatusChange checks whether a document may move from current to
// next. It is the default TransitionFunc: unknown statuses and a missing
// rejection reason are structural input errors, a known-but-disallowed
// transition is a conflict.
func ValidateStatusChange(current, next DocumentStatus, reason string) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("%w: current status %q", ErrInvalidStatus, current)
	}
	if _, err := ParseDocumentStatus(string(next)); err != nil {
		return err
	}
	if next == StatusRejected && reason == "" {
		return ErrReasonRequired
	}

	for _, status := range allowed {
		if status == next {
			return nil
		}
	}

	if current == StatusProcessed {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, StatusProcessed)
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
}
