package domain

import "time"

const (
	MemberRoleCoach   = "Pelatih"
	MemberRoleRegular = "Anggota"

	SpecialtyFight   = "Tanding"
	SpecialtyArtform = "Seni"

	// SpecialtyUnset is stored when a member has no specialty yet.
	SpecialtyUnset = "-"
)

type Member struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Role          string         `json:"role"`
	Cohort        string         `json:"cohort"`
	Specialty     string         `json:"specialty"`
	Championships []Championship `json:"championships"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type MemberPatch struct {
	Name      *string
	Role      *string
	Cohort    *string
	Specialty *string
}

type Championship struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Achievement string    `json:"achievement"`
	MemberID    string    `json:"member_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChampionshipPatch struct {
	Name        *string
	Year        *int
	Achievement *string
}
