package services

import (
	"context"
	"fmt"
	"strings"

	"confsite/internal/domain"
)

type speakerService struct {
	repo         domain.SpeakerRepository
	images       domain.ImageStore
	defaultImage string
}

// NewSpeakerService creates a SpeakerService. Speakers created without a photo get defaultImage.
func NewSpeakerService(repo domain.SpeakerRepository, images domain.ImageStore, defaultImage string) domain.SpeakerService {
	return &speakerService{repo: repo, images: images, defaultImage: defaultImage}
}

func (s *speakerService) List(ctx context.Context) ([]*domain.Speaker, error) {
	speakers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list speakers: %w", err)
	}
	return speakers, nil
}

func (s *speakerService) Get(ctx context.Context, id int64) (*domain.Speaker, error) {
	speaker, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get speaker %d: %w", id, err)
	}
	return speaker, nil
}

func (s *speakerService) Create(ctx context.Context, in domain.SpeakerInput) (*domain.Speaker, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	image := s.defaultImage
	if !in.Image.Empty() {
		ref, err := s.storeImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		image = ref
	}
	speaker := domain.NewSpeaker(name, strings.TrimSpace(in.Affiliation), strings.TrimSpace(in.Bio), image)
	if err := s.repo.Create(ctx, speaker); err != nil {
		return nil, fmt.Errorf("failed to create speaker: %w", err)
	}
	return speaker, nil
}

// Update replaces the text fields; the image reference changes only when a new file is supplied.
func (s *speakerService) Update(ctx context.Context, id int64, in domain.SpeakerInput) (*domain.Speaker, error) {
	speaker, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	speaker.Name = name
	speaker.Affiliation = strings.TrimSpace(in.Affiliation)
	speaker.Bio = strings.TrimSpace(in.Bio)
	if !in.Image.Empty() {
		ref, err := s.storeImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		speaker.Image = ref
	}
	if err := s.repo.Update(ctx, speaker); err != nil {
		return nil, fmt.Errorf("failed to update speaker %d: %w", id, err)
	}
	return speaker, nil
}

// Delete removes the row only. The stored image is left in place.
func (s *speakerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete speaker %d: %w", id, err)
	}
	return nil
}

func (s *speakerService) storeImage(ctx context.Context, f *domain.UploadedFile) (string, error) {
	ref, err := s.images.Store(ctx, f.Filename, f.Content)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return ref, nil
}
