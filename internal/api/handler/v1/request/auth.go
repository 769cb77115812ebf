package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

	// bcrypt rejects longer input.
	maxPasswordBytes = 72
)

var (
	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errPasswordTooLong = errors.New("the password must not exceed 72 bytes")

	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

// strongPassword accepts string and *string values; nil and empty values are left to Required.
func strongPassword(value interface{}) error {
	var password string
	switch v := value.(type) {
	case string:
		password = v
	case *string:
		if v == nil {
			return nil
		}
		password = *v
	}
	if password == "" {
		return nil
	}
	if len(password) > maxPasswordBytes {
		return errPasswordTooLong
	}

	ok, err := passwordExp.MatchString(password)
	if err != nil {
		return err
	}
	if !ok {
		return errInvalidPassword
	}

	return nil
}
