package user

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/kozi/core"
)

type svcStub struct {
	Service
	uniquenessErr error
}

func (s svcStub) CheckUniqueness(context.Context, string, string, ...User) error {
	return s.uniquenessErr
}

func TestNewUser_Validate(t *testing.T) {
	validate, translator := core.NewValidator()
	RegisterValidators(validate, translator)

	newUser := func(pwd string) NewUser {
		return NewUser{
			Name:     "Awe Lol",
			Username: "awelol",
			Email:    "awe@test.cd",
			Password: pwd,
		}
	}

	tests := []struct {
		name    string
		nu      NewUser
		svc     Service
		wantTag string
	}{
		{name: "ok", nu: newUser("S3cret!pass"), svc: svcStub{}},
		{name: "missing fields", nu: NewUser{}, svc: svcStub{}, wantTag: "required"},
		{name: "short username", nu: NewUser{Name: "A", Username: "awe", Email: "awe@test.cd", Password: "S3cret!pass"}, svc: svcStub{}, wantTag: "min"},
		{name: "bad email", nu: NewUser{Name: "A", Username: "awelol", Email: "nope", Password: "S3cret!pass"}, svc: svcStub{}, wantTag: "email"},
		{name: "password too short", nu: newUser("S3cr!t"), svc: svcStub{}, wantTag: "pwdminlen"},
		{name: "password with whitespace", nu: newUser("S3cret! pass"), svc: svcStub{}, wantTag: "pwdnospace"},
		{name: "password all numeric", nu: newUser("12345678"), svc: svcStub{}, wantTag: "pwdnotallnum"},
		{name: "password lacks complexity", nu: newUser("secretpass"), svc: svcStub{}, wantTag: "pwdcplx"},
		{name: "password too similar to username", nu: NewUser{Name: "A", Username: "awelol77", Email: "awe@test.cd", Password: "Awelol77!"}, svc: svcStub{}, wantTag: "pwdtoosim"},
		{name: "username taken", nu: newUser("S3cret!pass"), svc: svcStub{uniquenessErr: ErrUsernameExists}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nu.Validate(context.Background(), validate, tt.svc)

			if tt.wantTag == "" {
				if stub, ok := tt.svc.(svcStub); ok && stub.uniquenessErr != nil {
					if err != stub.uniquenessErr {
						t.Errorf("Validate() error = %v, want %v", err, stub.uniquenessErr)
					}
					return
				}
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}

			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Validate() error = %v, want validator.ValidationErrors", err)
			}
			for _, vErr := range vErrs {
				if vErr.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Validate() errors = %v, want tag %q", vErrs, tt.wantTag)
		})
	}
}

func TestNewUser_Validate_cleansInput(t *testing.T) {
	validate, translator := core.NewValidator()
	RegisterValidators(validate, translator)

	nu := NewUser{
		Name:     "  Awe Lol  ",
		Username: " AweLol ",
		Email:    " AWE@Test.CD ",
		Password: "S3cret!pass",
	}
	if err := nu.Validate(context.Background(), validate, svcStub{}); err != nil {
		t.Fatalf("Validate() failed, %v", err)
	}
	if nu.Name != "Awe Lol" {
		t.Errorf("Name = %q, want trimmed", nu.Name)
	}
	if nu.Username != "awelol" {
		t.Errorf("Username = %q, want lowercased", nu.Username)
	}
	if nu.Email != "awe@test.cd" {
		t.Errorf("Email = %q, want lowercased", nu.Email)
	}
}

func TestUser_SetCheckPassword(t *testing.T) {
	var usr User
	if err := usr.SetPassword("S3cret!pass"); err != nil {
		t.Fatalf("SetPassword() failed, %v", err)
	}
	if err := usr.CheckPassword("S3cret!pass"); err != nil {
		t.Errorf("CheckPassword() failed, %v", err)
	}
	if err := usr.CheckPassword("nope"); err == nil {
		t.Error("CheckPassword() expected a mismatch error")
	}
}
