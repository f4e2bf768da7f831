package domain

import (
	"context"
	"errors"
	"io"
)

// Sentinel errors shared by speaker and date operations.
var (
	ErrNotFound     = errors.New("not found")
	ErrNameRequired = errors.New("name is required")
)

// Speaker represents a conference speaker shown on the landing page.
// Image is an opaque reference: a bare filename for the local store, an absolute URL for the remote one.
// swagger:model Speaker
type Speaker struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	Bio         string `json:"bio"`
	Image       string `json:"image"`
}

// NewSpeaker returns a new Speaker with the given fields. ID is set by the repository on create.
func NewSpeaker(name, affiliation, bio, image string) *Speaker {
	return &Speaker{
		Name:        name,
		Affiliation: affiliation,
		Bio:         bio,
		Image:       image,
	}
}

// UploadedFile is an image submitted with a speaker form.
// A nil *UploadedFile or an empty Filename means no file was chosen.
type UploadedFile struct {
	Filename string
	Content  io.Reader
}

// Empty reports whether no file was supplied.
func (f *UploadedFile) Empty() bool {
	return f == nil || f.Filename == ""
}

// SpeakerInput carries the editable speaker fields from a form.
type SpeakerInput struct {
	Name        string
	Affiliation string
	Bio         string
	Image       *UploadedFile
}

// SpeakerRepository defines the interface for speaker storage
type SpeakerRepository interface {
	List(ctx context.Context) ([]*Speaker, error)
	GetByID(ctx context.Context, id int64) (*Speaker, error)
	Create(ctx context.Context, speaker *Speaker) error
	Update(ctx context.Context, speaker *Speaker) error
	Delete(ctx context.Context, id int64) error
}

// SpeakerService defines the business logic for managing speakers.
type SpeakerService interface {
	List(ctx context.Context) ([]*Speaker, error)
	Get(ctx context.Context, id int64) (*Speaker, error)
	Create(ctx context.Context, in SpeakerInput) (*Speaker, error)
	Update(ctx context.Context, id int64, in SpeakerInput) (*Speaker, error)
	Delete(ctx context.Context, id int64) error
}
