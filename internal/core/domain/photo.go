package domain

import (
	"io"
	"time"
)

// Photo is a stored avatar object opened for reading.
type Photo struct {
	Body         io.ReadCloser
	ContentType  string
	Size         int64
	LastModified time.Time
}

// CleanupJob removes a superseded avatar and drops the cached summary of its owner.
type CleanupJob struct {
	UID       string
	ObjectKey string
}
