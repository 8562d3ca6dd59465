package api

import "errors"

// Error taxonomy for remote calls. Callers match with errors.Is; the
// concrete failure detail is wrapped around one of these sentinels.
var (
	// ErrAuth means no valid credential was available or the server
	// rejected the one presented.
	ErrAuth = errors.New("authentication failed")

	// ErrValidation means the server rejected the payload.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the id does not exist or is not owned by the
	// caller; the server does not distinguish the two.
	ErrNotFound = errors.New("todo not found")

	// ErrNetwork covers transport failures and server-side errors.
	ErrNetwork = errors.New("network error")
)
