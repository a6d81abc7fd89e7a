package savegame

import "errors"

// Every failure class is fatal for the operation in progress: no partial
// recovery is attempted, and a file that trips any of these is unusable.
var (
	// ErrIncompatibleSave is returned when a header tag (format version,
	// game identity, OS, or architecture) does not match the running build.
	ErrIncompatibleSave = errors.New("incompatible savegame")

	// ErrLayoutMismatch is returned when the recorded entity block size does
	// not match the running build's descriptor tables.
	ErrLayoutMismatch = errors.New("savegame entity layout mismatch")

	// ErrUnresolvedReference is returned when a routine or move script
	// address has no registered name at save time, or a stored name resolves
	// to nothing at load time.
	ErrUnresolvedReference = errors.New("unresolved behavior reference")

	// ErrCorruptStream is returned for truncated reads, a missing entity
	// sentinel, an out-of-range or duplicate entity index, or an oversized
	// name record.
	ErrCorruptStream = errors.New("corrupt savegame stream")
)
