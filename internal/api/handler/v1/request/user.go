package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/km-silat/km-silat-api/internal/domain"
)

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (req *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&req.Password, validation.Required, validation.By(strongPassword)),
		validation.Field(&req.Role, validation.In(domain.RoleAdmin, domain.RoleUser)),
	)
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (req *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.NilOrNotEmpty, validation.Length(3, 50)),
		validation.Field(&req.Password, validation.NilOrNotEmpty, validation.By(strongPassword)),
		validation.Field(&req.Role, validation.NilOrNotEmpty, validation.In(domain.RoleAdmin, domain.RoleUser)),
	)
}

func (req *UpdateUserRequest) Patch() domain.UserPatch {
	return domain.UserPatch{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}
}
