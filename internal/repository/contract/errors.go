package contract

import "errors"

// ErrVersionConflict reports that a history snapshot lost a race with a
// concurrent edit of the same message: the (message_id, version) pair was
// already taken. Retrying is a caller decision.
var ErrVersionConflict = errors.New("message history version conflict")
