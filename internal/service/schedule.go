package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/repository"
)

var (
	ErrScheduleNotFound  = repository.ErrScheduleNotFound
	ErrInvalidScheduleID = errors.New("schedule id must be between 0 and 6")
)

type ScheduleRepository interface {
	FindAll(ctx context.Context) ([]domain.ScheduleEntry, error)
	Update(ctx context.Context, id int, update domain.ScheduleUpdate) (domain.ScheduleEntry, error)
}

type ScheduleService struct {
	repo ScheduleRepository
}

func NewScheduleService(repo ScheduleRepository) *ScheduleService {
	return &ScheduleService{
		repo: repo,
	}
}

func (s *ScheduleService) ListSchedule(ctx context.Context) ([]domain.ScheduleEntry, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return entries, nil
}

func (s *ScheduleService) UpdateSchedule(ctx context.Context, id int, update domain.ScheduleUpdate) (domain.ScheduleEntry, error) {
	if id < 0 || id >= domain.ScheduleDays {
		return domain.ScheduleEntry{}, ErrInvalidScheduleID
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
