package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrEntryNotFound indicates the requested video entry does not exist
	ErrEntryNotFound = errors.New("video entry not found")

	// ErrQueueEmpty indicates an operation that requires a non-empty queue
	ErrQueueEmpty = errors.New("playback queue is empty")

	// ErrNotAVideo indicates a selected file is not a recognized video type
	ErrNotAVideo = errors.New("file is not a recognized video type")

	// ErrBadURL indicates a submitted URL could not be classified or embedded
	ErrBadURL = errors.New("malformed video URL")

	// ErrBackendUnavailable indicates the content backend is unreachable
	ErrBackendUnavailable = errors.New("content backend is unreachable")

	// ErrStorageUnavailable indicates the durable store rejected an operation
	ErrStorageUnavailable = errors.New("durable storage is unavailable")
)
