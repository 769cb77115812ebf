package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/km-silat/km-silat-api/internal/domain"
)

var errInvalidYear = errors.New("year must be an integer")

// Year accepts either a JSON number or a numeric string ("2023").
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return errInvalidYear
		}
		raw = strings.TrimSpace(raw)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return errInvalidYear
	}
	*y = Year(n)

	return nil
}

type CreateMemberRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Cohort    string `json:"cohort"`
	Specialty string `json:"specialty"`
}

func (req *CreateMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Role, validation.Required, validation.In(domain.MemberRoleCoach, domain.MemberRoleRegular)),
		validation.Field(&req.Cohort, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Specialty, validation.In(domain.SpecialtyFight, domain.SpecialtyArtform, domain.SpecialtyUnset)),
	)
}

type UpdateMemberRequest struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Cohort    *string `json:"cohort"`
	Specialty *string `json:"specialty"`
}

func (req *UpdateMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Role, validation.NilOrNotEmpty, validation.In(domain.MemberRoleCoach, domain.MemberRoleRegular)),
		validation.Field(&req.Cohort, validation.NilOrNotEmpty, validation.Length(1, 20)),
		validation.Field(&req.Specialty, validation.NilOrNotEmpty, validation.In(domain.SpecialtyFight, domain.SpecialtyArtform, domain.SpecialtyUnset)),
	)
}

func (req *UpdateMemberRequest) Patch() domain.MemberPatch {
	return domain.MemberPatch{
		Name:      req.Name,
		Role:      req.Role,
		Cohort:    req.Cohort,
		Specialty: req.Specialty,
	}
}

type CreateChampionshipRequest struct {
	Name        string `json:"name"`
	Year        Year   `json:"year"`
	Achievement string `json:"achievement"`
}

func (req *CreateChampionshipRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Year, validation.Required, validation.Min(1900), validation.Max(2100)),
		validation.Field(&req.Achievement, validation.Required, validation.Length(1, 100)),
	)
}

type UpdateChampionshipRequest struct {
	Name        *string `json:"name"`
	Year        *Year   `json:"year"`
	Achievement *string `json:"achievement"`
}

func (req *UpdateChampionshipRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&req.Year, validation.NilOrNotEmpty, validation.Min(1900), validation.Max(2100)),
		validation.Field(&req.Achievement, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

func (req *UpdateChampionshipRequest) Patch() domain.ChampionshipPatch {
	patch := domain.ChampionshipPatch{
		Name:        req.Name,
		Achievement: req.Achievement,
	}
	if req.Year != nil {
		year := int(*req.Year)
		patch.Year = &year
	}

	return patch
}
