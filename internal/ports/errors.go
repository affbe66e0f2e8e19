package ports

import "errors"

var (
	// ErrSnapshotNotFound is returned when no snapshot exists for a match.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
