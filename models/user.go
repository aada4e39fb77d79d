package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account holder of the application.
type User struct {
	Model
	Fullname       string    `json:"fullname" binding:"required,min=2" conform:"trim"`
	Telephone      string    `json:"telephone" gorm:"default:null" conform:"trim"`
	UpiID          string    `json:"upi_id" conform:"trim"`
	Email          string    `json:"email" gorm:"unique;not null" binding:"required,email" conform:"email"`
	Password       string    `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string    `json:"-"`
	AccessToken    string    `json:"-" gorm:"-"`
	IsBlocked      bool      `json:"is_blocked" gorm:"default:false"`
	RoleID         uuid.UUID `gorm:"type:uuid" json:"role_id"`
	Role           Role      `gorm:"foreignKey:RoleID" json:"role"`
}

// IsAdmin reports whether the user carries the Admin role. The Role must have
// been preloaded alongside the user.
func (u *User) IsAdmin() bool {
	return u.Role.Name == RoleAdmin
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

// Blacklist holds access tokens invalidated by logout.
type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token"`
}

type SignupRequest struct {
	Fullname  string `json:"fullname" binding:"required,min=2" conform:"trim"`
	Telephone string `json:"telephone" conform:"trim"`
	UpiID     string `json:"upi_id" conform:"trim"`
	Email     string `json:"email" binding:"required,email" conform:"email"`
	Password  string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Fullname  string `json:"fullname"`
	Telephone string `json:"telephone"`
	UpiID     string `json:"upi_id"`
	Email     string `json:"email"`
	RoleName  string `json:"role_name"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type EditProfileRequest struct {
	Fullname  string `json:"fullname" binding:"required,min=2" conform:"trim"`
	Telephone string `json:"telephone" conform:"trim"`
	UpiID     string `json:"upi_id" conform:"trim"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(32, errors.New("password cant be more than 32 characters")))
	return passwordValidator.Validate(password)
}

// ValidateStruct trims whitespace in place, then runs struct validation and
// returns translated, human-readable errors.
func ValidateStruct(req interface{}) []error {
	if err := validateWhiteSpaces(req); err != nil {
		return []error{err}
	}
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	err := validate.Struct(req)
	return translateError(err, trans)
}

func validateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}
