package services

import (
	"errors"

	"github.com/dmitrijs2005/arondight/internal/common"
	"github.com/dmitrijs2005/arondight/internal/server/auth"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules. The email is checked in its
// normalised form, the one that gets stored.
func (r RegisterInput) Validate() error {
	r.Email = common.NormalizeEmail(r.Email)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.By(maxPasswordBytes)),
	)
}

// LoginInput is the payload for exchanging credentials for a token.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateInput carries the profile fields to change. Nil fields are left
// as they are.
type UpdateInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate will run validation rules
func (r UpdateInput) Validate() error {
	if r.Email != nil {
		email := common.NormalizeEmail(*r.Email)
		r.Email = &email
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.By(maxPasswordBytes)),
	)
}

func (r UpdateInput) empty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil
}

func maxPasswordBytes(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	}
	if len(s) > auth.MaxPasswordBytes {
		return errors.New("must be at most 72 bytes long")
	}
	return nil
}
