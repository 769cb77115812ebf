package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrChampionshipNotFound = errors.New("championship not found")
)

type Member struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)"`
	Name          string         `gorm:"not null"`
	Role          string         `gorm:"not null"`
	Cohort        string         `gorm:"not null"`
	Specialty     string         `gorm:"not null;default:'-'"`
	Championships []Championship `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

type Championship struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Name        string `gorm:"not null"`
	Year        int    `gorm:"not null"`
	Achievement string `gorm:"not null"`
	MemberID    string `gorm:"type:varchar(36);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Championship) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

type MemberDAO struct {
	db *gorm.DB
}

func NewMemberDAO(db *gorm.DB) *MemberDAO {
	return &MemberDAO{
		db: db,
	}
}

func (d *MemberDAO) FindAll(ctx context.Context) ([]Member, error) {
	var members []Member

	result := d.db.WithContext(ctx).
		Scopes(orderByCreatedAsc).
		Preload("Championships", orderByCreatedAsc).
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

func (d *MemberDAO) FindByID(ctx context.Context, id string) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).
		Preload("Championships", orderByCreatedAsc).
		First(&member, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) Insert(ctx context.Context, member Member) (Member, error) {
	if result := d.db.WithContext(ctx).Create(&member); result.Error != nil {
		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) Update(ctx context.Context, id string, fields map[string]interface{}) (Member, error) {
	if _, err := d.FindByID(ctx, id); err != nil {
		return Member{}, err
	}

	if len(fields) > 0 {
		if result := d.db.WithContext(ctx).Model(&Member{ID: id}).Updates(fields); result.Error != nil {
			return Member{}, result.Error
		}
	}

	return d.FindByID(ctx, id)
}

func (d *MemberDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Member{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (d *MemberDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	if result := d.db.WithContext(ctx).Model(&Member{}).Count(&count); result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *MemberDAO) InsertChampionship(ctx context.Context, championship Championship) (Championship, error) {
	result := d.db.WithContext(ctx).Create(&championship)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return Championship{}, ErrMemberNotFound
		}

		return Championship{}, result.Error
	}

	return championship, nil
}

func (d *MemberDAO) FindChampionshipByID(ctx context.Context, id string) (Championship, error) {
	var championship Championship

	result := d.db.WithContext(ctx).First(&championship, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Championship{}, ErrChampionshipNotFound
		}

		return Championship{}, result.Error
	}

	return championship, nil
}

func (d *MemberDAO) UpdateChampionship(ctx context.Context, id string, fields map[string]interface{}) (Championship, error) {
	if _, err := d.FindChampionshipByID(ctx, id); err != nil {
		return Championship{}, err
	}

	if len(fields) > 0 {
		if result := d.db.WithContext(ctx).Model(&Championship{ID: id}).Updates(fields); result.Error != nil {
			return Championship{}, result.Error
		}
	}

	return d.FindChampionshipByID(ctx, id)
}

func (d *MemberDAO) DeleteChampionship(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Championship{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChampionshipNotFound
	}

	return nil
}
