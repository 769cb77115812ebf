package domain

import "time"

const (
	ScheduleStatusTraining = "Latihan"
	ScheduleStatusRest     = "Istirahat"

	// ScheduleDays is the fixed number of schedule rows, one per weekday.
	ScheduleDays = 7
)

// DayNames maps a schedule id (0 = Sunday, as in JavaScript's Date.getDay) to its display name.
var DayNames = [ScheduleDays]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

type ScheduleEntry struct {
	ID        int       `json:"id"`
	DayName   string    `json:"day_name"`
	Status    string    `json:"status"`
	Category  *string   `json:"category"`
	Time      *string   `json:"time"`
	Location  *string   `json:"location"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ScheduleUpdate struct {
	Status   *string
	Category *string
	Time     *string
	Location *string
}
