package repository

import (
	"context"
	"fmt"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/repository/dao"
)

var (
	ErrMemberNotFound       = dao.ErrMemberNotFound
	ErrChampionshipNotFound = dao.ErrChampionshipNotFound
)

type MemberDAO interface {
	FindAll(ctx context.Context) ([]dao.Member, error)
	FindByID(ctx context.Context, id string) (dao.Member, error)
	Insert(ctx context.Context, member dao.Member) (dao.Member, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (dao.Member, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	InsertChampionship(ctx context.Context, championship dao.Championship) (dao.Championship, error)
	UpdateChampionship(ctx context.Context, id string, fields map[string]interface{}) (dao.Championship, error)
	DeleteChampionship(ctx context.Context, id string) error
}

type MemberRepository struct {
	dao MemberDAO
}

func NewMemberRepository(dao MemberDAO) *MemberRepository {
	return &MemberRepository{
		dao: dao,
	}
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]domain.Member, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	members := make([]domain.Member, 0, len(found))
	for _, m := range found {
		members = append(members, r.daoToDomain(m))
	}

	return members, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (domain.Member, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MemberRepository) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	created, err := r.dao.Insert(ctx, dao.Member{
		Name:      member.Name,
		Role:      member.Role,
		Cohort:    member.Cohort,
		Specialty: member.Specialty,
	})
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *MemberRepository) Update(ctx context.Context, id string, patch domain.MemberPatch) (domain.Member, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Role != nil {
		fields["role"] = *patch.Role
	}
	if patch.Cohort != nil {
		fields["cohort"] = *patch.Cohort
	}
	if patch.Specialty != nil {
		fields["specialty"] = *patch.Specialty
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *MemberRepository) CreateChampionship(ctx context.Context, c domain.Championship) (domain.Championship, error) {
	created, err := r.dao.InsertChampionship(ctx, dao.Championship{
		Name:        c.Name,
		Year:        c.Year,
		Achievement: c.Achievement,
		MemberID:    c.MemberID,
	})
	if err != nil {
		return domain.Championship{}, fmt.Errorf("r.dao.InsertChampionship -> %w", err)
	}

	return r.championshipDaoToDomain(created), nil
}

func (r *MemberRepository) UpdateChampionship(ctx context.Context, id string, patch domain.ChampionshipPatch) (domain.Championship, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Year != nil {
		fields["year"] = *patch.Year
	}
	if patch.Achievement != nil {
		fields["achievement"] = *patch.Achievement
	}

	updated, err := r.dao.UpdateChampionship(ctx, id, fields)
	if err != nil {
		return domain.Championship{}, fmt.Errorf("r.dao.UpdateChampionship -> %w", err)
	}

	return r.championshipDaoToDomain(updated), nil
}

func (r *MemberRepository) DeleteChampionship(ctx context.Context, id string) error {
	if err := r.dao.DeleteChampionship(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteChampionship -> %w", err)
	}

	return nil
}

func (r *MemberRepository) daoToDomain(m dao.Member) domain.Member {
	championships := make([]domain.Championship, 0, len(m.Championships))
	for _, c := range m.Championships {
		championships = append(championships, r.championshipDaoToDomain(c))
	}

	return domain.Member{
		ID:            m.ID,
		Name:          m.Name,
		Role:          m.Role,
		Cohort:        m.Cohort,
		Specialty:     m.Specialty,
		Championships: championships,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *MemberRepository) championshipDaoToDomain(c dao.Championship) domain.Championship {
	return domain.Championship{
		ID:          c.ID,
		Name:        c.Name,
		Year:        c.Year,
		Achievement: c.Achievement,
		MemberID:    c.MemberID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
