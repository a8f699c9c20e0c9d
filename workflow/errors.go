package workflow

import "errors"

// The four error kinds the engine reports to callers. InvalidTransition and
// PermissionDenied both block a status change, but they are distinct on
// purpose: one means "not from this status", the other "not for this role",
// and clients handle them differently.
var (
	ErrInvalidTransition = errors.New("status change not allowed from the current status")
	ErrPermissionDenied  = errors.New("role is not permitted to perform this action")
	ErrNotFound          = errors.New("record not found")
	ErrCapacityExceeded  = errors.New("counsellor limit reached for this account")
)
