package service

import (
	"context"
	"fmt"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/repository"
)

var (
	ErrMemberNotFound       = repository.ErrMemberNotFound
	ErrChampionshipNotFound = repository.ErrChampionshipNotFound
)

type MemberRepository interface {
	FindAll(ctx context.Context) ([]domain.Member, error)
	FindByID(ctx context.Context, id string) (domain.Member, error)
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	Update(ctx context.Context, id string, patch domain.MemberPatch) (domain.Member, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CreateChampionship(ctx context.Context, c domain.Championship) (domain.Championship, error)
	UpdateChampionship(ctx context.Context, id string, patch domain.ChampionshipPatch) (domain.Championship, error)
	DeleteChampionship(ctx context.Context, id string) error
}

type MemberService struct {
	repo MemberRepository
}

func NewMemberService(repo MemberRepository) *MemberService {
	return &MemberService{
		repo: repo,
	}
}

func (s *MemberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	members, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return members, nil
}

func (s *MemberService) CreateMember(ctx context.Context, member domain.Member) (domain.Member, error) {
	if member.Specialty == "" {
		member.Specialty = domain.SpecialtyUnset
	}

	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *MemberService) UpdateMember(ctx context.Context, id string, patch domain.MemberPatch) (domain.Member, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *MemberService) DeleteMember(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *MemberService) AddChampionship(ctx context.Context, c domain.Championship) (domain.Championship, error) {
	created, err := s.repo.CreateChampionship(ctx, c)
	if err != nil {
		return domain.Championship{}, fmt.Errorf("s.repo.CreateChampionship -> %w", err)
	}

	return created, nil
}

func (s *MemberService) UpdateChampionship(ctx context.Context, id string, patch domain.ChampionshipPatch) (domain.Championship, error) {
	updated, err := s.repo.UpdateChampionship(ctx, id, patch)
	if err != nil {
		return domain.Championship{}, fmt.Errorf("s.repo.UpdateChampionship -> %w", err)
	}

	return updated, nil
}

func (s *MemberService) DeleteChampionship(ctx context.Context, id string) error {
	if err := s.repo.DeleteChampionship(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteChampionship -> %w", err)
	}

	return nil
}
