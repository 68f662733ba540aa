package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProfilePhoto references an image stored in the media bucket. The row keeps
// the object key so the blob can be resolved or cleaned up later.
type ProfilePhoto struct {
	ID          uuid.UUID
	ObjectKey   string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}
