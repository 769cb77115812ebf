package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrScheduleNotFound = errors.New("schedule entry not found")

type ScheduleEntry struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	DayName   string `gorm:"not null"`
	Status    string `gorm:"not null"`
	Category  *string
	Time      *string
	Location  *string
	UpdatedAt time.Time
}

type ScheduleDAO struct {
	db *gorm.DB
}

func NewScheduleDAO(db *gorm.DB) *ScheduleDAO {
	return &ScheduleDAO{
		db: db,
	}
}

func (d *ScheduleDAO) FindAll(ctx context.Context) ([]ScheduleEntry, error) {
	var entries []ScheduleEntry

	result := d.db.WithContext(ctx).Order("id ASC").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *ScheduleDAO) FindByID(ctx context.Context, id int) (ScheduleEntry, error) {
	var entry ScheduleEntry

	result := d.db.WithContext(ctx).First(&entry, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ScheduleEntry{}, ErrScheduleNotFound
		}

		return ScheduleEntry{}, result.Error
	}

	return entry, nil
}

func (d *ScheduleDAO) Update(ctx context.Context, id int, fields map[string]interface{}) (ScheduleEntry, error) {
	if _, err := d.FindByID(ctx, id); err != nil {
		return ScheduleEntry{}, err
	}

	if len(fields) > 0 {
		result := d.db.WithContext(ctx).Model(&ScheduleEntry{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return ScheduleEntry{}, result.Error
		}
	}

	return d.FindByID(ctx, id)
}
