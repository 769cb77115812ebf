package repository

import (
	"context"
	"fmt"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/repository/dao"
)

var ErrScheduleNotFound = dao.ErrScheduleNotFound

type ScheduleDAO interface {
	FindAll(ctx context.Context) ([]dao.ScheduleEntry, error)
	Update(ctx context.Context, id int, fields map[string]interface{}) (dao.ScheduleEntry, error)
}

type ScheduleRepository struct {
	dao ScheduleDAO
}

func NewScheduleRepository(dao ScheduleDAO) *ScheduleRepository {
	return &ScheduleRepository{
		dao: dao,
	}
}

func (r *ScheduleRepository) FindAll(ctx context.Context) ([]domain.ScheduleEntry, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	entries := make([]domain.ScheduleEntry, 0, len(found))
	for _, e := range found {
		entries = append(entries, r.daoToDomain(e))
	}

	return entries, nil
}

func (r *ScheduleRepository) Update(ctx context.Context, id int, update domain.ScheduleUpdate) (domain.ScheduleEntry, error) {
	fields := map[string]interface{}{}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	if update.Time != nil {
		fields["time"] = *update.Time
	}
	if update.Location != nil {
		fields["location"] = *update.Location
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ScheduleRepository) daoToDomain(e dao.ScheduleEntry) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		ID:        e.ID,
		DayName:   e.DayName,
		Status:    e.Status,
		Category:  e.Category,
		Time:      e.Time,
		Location:  e.Location,
		UpdatedAt: e.UpdatedAt,
	}
}
