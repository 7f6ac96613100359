// Package model holds the user entity and the auth request/response shapes.
package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("This field is required."),
			is.EmailFormat.Error("Enter a valid email address."),
		),
		validation.Field(&r.Password,
			validation.Required.Error("This field is required."),
			validation.Length(8, 128).Error("Password must be at least 8 characters."),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("This field is required.")),
		validation.Field(&r.Password, validation.Required.Error("This field is required.")),
	)
}

// AuthResponse carries the issued token pair alongside the account.
type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
