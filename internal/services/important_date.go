package services

import (
	"context"
	"fmt"
	"strings"

	"confsite/internal/domain"
)

type importantDateService struct {
	repo domain.ImportantDateRepository
}

// NewImportantDateService creates an ImportantDateService.
func NewImportantDateService(repo domain.ImportantDateRepository) domain.ImportantDateService {
	return &importantDateService{repo: repo}
}

func (s *importantDateService) List(ctx context.Context) ([]*domain.ImportantDate, error) {
	dates, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dates: %w", err)
	}
	return dates, nil
}

func (s *importantDateService) Create(ctx context.Context, name, dateStr string) (*domain.ImportantDate, bool, error) {
	name = strings.TrimSpace(name)
	dateStr = strings.TrimSpace(dateStr)
	if name == "" || dateStr == "" {
		return nil, false, nil
	}
	d := domain.NewImportantDate(name, dateStr)
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, false, fmt.Errorf("failed to create date: %w", err)
	}
	return d, true, nil
}

func (s *importantDateService) UpdateDate(ctx context.Context, id int64, dateStr string) (*domain.ImportantDate, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get date %d: %w", id, err)
	}
	d.DateStr = strings.TrimSpace(dateStr)
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to update date %d: %w", id, err)
	}
	return d, nil
}

func (s *importantDateService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete date %d: %w", id, err)
	}
	return nil
}
