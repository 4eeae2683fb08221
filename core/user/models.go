package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/kozi/core"
)

type User struct {
	ID                  string    `json:"id"`
	Name                string    `json:"fullname"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	IsActive            bool      `json:"isActive"`
	PasswordHash        []byte    `json:"-"`
	CertificateEligible bool      `json:"certificateEligible"`
	CourseCompletedAt   null.Time `json:"courseCompletedAt"`
	CreatedAt           time.Time `json:"createdAt"` // UTC
	UpdatedAt           time.Time `json:"updatedAt"` // UTC
	LastLogin           null.Time `json:"lastLogin"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name     string `json:"fullname" validate:"required"`
	Username string `json:"username" validate:"required,min=6,alphanum_"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Username, nu.Email)
}
