package service

import (
	"context"
	"fmt"

	"github.com/km-silat/km-silat-api/internal/domain"
)

type MemberCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ItemCounter interface {
	CountItems(ctx context.Context) (int64, error)
}

type StatsService struct {
	members MemberCounter
	items   ItemCounter
}

func NewStatsService(members MemberCounter, items ItemCounter) *StatsService {
	return &StatsService{
		members: members,
		items:   items,
	}
}

func (s *StatsService) GetStats(ctx context.Context) (domain.Stats, error) {
	members, err := s.members.Count(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("s.members.Count -> %w", err)
	}

	items, err := s.items.CountItems(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("s.items.CountItems -> %w", err)
	}

	return domain.Stats{
		TotalMembers:   members,
		TotalMaterials: items,
	}, nil
}
