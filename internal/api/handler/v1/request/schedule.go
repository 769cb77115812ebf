package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateScheduleRequest struct {
	Status   *string `json:"status"`
	Category *string `json:"category"`
	Time     *string `json:"time"`
	Location *string `json:"location"`
}

func (req *UpdateScheduleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.NilOrNotEmpty, validation.Length(1, 30)),
		validation.Field(&req.Category, validation.Length(0, 100)),
		validation.Field(&req.Time, validation.Length(0, 50)),
		validation.Field(&req.Location, validation.Length(0, 100)),
	)
}
