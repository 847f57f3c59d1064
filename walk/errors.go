package walk

import "errors"

var (
	// ErrTypeInformationLost is returned when a decoded varbind along the
	// walk lost its type tag; the walk refuses to infer a type rather than
	// risk silently conflating e.g. Counter32 and Gauge32.
	ErrTypeInformationLost = errors.New("walk: type information lost")

	// ErrWalkCeilingExceeded is returned when a walk's total elapsed time
	// across all segments exceeds MaxWalkDuration.
	ErrWalkCeilingExceeded = errors.New("walk: exceeded per-walk time ceiling")

	// ErrBulkFloorRejected is returned when an agent responds tooBig even
	// at MinBulkSize max_repetitions.
	ErrBulkFloorRejected = errors.New("walk: agent rejected getbulk at minimum bulk size")
)
