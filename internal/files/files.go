package files

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record does not exist in the index
var ErrNotFound = errors.New("file not found")

// Kind selects the delivery method of an indexed file
type Kind string

const (
	KindDocument Kind = "document"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
)

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	switch k {
	case KindDocument, KindVideo, KindAudio:
		return true
	}
	return false
}

// File represents one indexed media file
type File struct {
	ID              string `json:"id"`
	ExternalRef     string `json:"external_ref"`
	Name            string `json:"name"`
	Caption         string `json:"caption"`
	SourceMessageID int    `json:"source_message_id"`
	SourceChannelID int64  `json:"source_channel_id"`
	Kind            Kind   `json:"kind"`
}

// DisplayName returns the name, falling back to the caption when the name is empty
func (f *File) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Caption
}

// Repository defines the interface for the file index store
type Repository interface {
	// Upsert inserts the file or replaces the one with the same external reference.
	// The stored ID is written back into file.
	Upsert(ctx context.Context, file *File) error

	// Search returns files whose name or caption contains query, case-insensitively,
	// in insertion order
	Search(ctx context.Context, query string) ([]*File, error)

	// FindByID retrieves a file by its store-assigned ID
	FindByID(ctx context.Context, id string) (*File, error)

	// Delete removes a file by ID
	Delete(ctx context.Context, id string) error

	// Count returns the number of indexed files
	Count(ctx context.Context) (int, error)
}
