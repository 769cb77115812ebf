package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type scheduleSeed struct {
	id       int
	status   string
	time     string
	location string
}

var defaultSchedule = []scheduleSeed{
	{id: 0, status: "Istirahat", time: "-", location: "-"},
	{id: 1, status: "Latihan", time: "16.00 - 17.30", location: "Lapangan Utama"},
	{id: 2, status: "Istirahat", time: "-", location: "-"},
	{id: 3, status: "Istirahat", time: "-", location: "-"},
	{id: 4, status: "Latihan", time: "16.00 - 17.30", location: "Lapangan Utama"},
	{id: 5, status: "Istirahat", time: "-", location: "-"},
	{id: 6, status: "Latihan", time: "08.00 - 10.00", location: "Aula Latihan"},
}

var dayNames = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// SeedSchedule makes sure the seven weekday rows exist. Existing rows are left untouched.
func SeedSchedule(ctx context.Context, db *gorm.DB) error {
	now := time.Now()
	for _, s := range defaultSchedule {
		result := db.WithContext(ctx).Exec(
			`INSERT INTO schedule_entries (id, day_name, status, time, location, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`,
			s.id, dayNames[s.id], s.status, s.time, s.location, now,
		)
		if result.Error != nil {
			return fmt.Errorf("seed schedule %d -> %w", s.id, result.Error)
		}
	}

	return nil
}
