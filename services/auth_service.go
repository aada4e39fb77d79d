package services

import (
	"log"
	"net/http"

	"github.com/Gupta-Developer/earnbyapps/config"
	"github.com/Gupta-Developer/earnbyapps/db"
	apiError "github.com/Gupta-Developer/earnbyapps/errors"
	"github.com/Gupta-Developer/earnbyapps/mailingservices"
	"github.com/Gupta-Developer/earnbyapps/models"
	"github.com/Gupta-Developer/earnbyapps/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	pkgerrors "github.com/pkg/errors"
)

// AuthService is the identity collaborator: it answers who the caller is and
// whether they hold the admin capability.
type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.UserResponse, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	GetUserProfile(userID uint) (*models.UserResponse, error)
	EditUserProfile(userID uint, details *models.EditProfileRequest) error
	GetAllUsers() ([]models.User, error)
	GetRoleByName(name string) (*models.Role, error)
	SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error
	ResetPassword(request *models.ResetPassword, token string) *apiError.Error
}

type authService struct {
	Config   *config.Config
	Mail     *mailingservices.Mailgun
	authRepo db.AuthRepository
}

func NewAuthService(authRepo db.AuthRepository, mail *mailingservices.Mailgun, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		Mail:     mail,
		authRepo: authRepo,
	}
}

func toUserResponse(user *models.User) *models.UserResponse {
	return &models.UserResponse{
		ID:        user.ID,
		Fullname:  user.Fullname,
		Telephone: user.Telephone,
		UpiID:     user.UpiID,
		Email:     user.Email,
		RoleName:  user.Role.Name,
	}
}

func (s *authService) SignupUser(request *models.SignupRequest) (*models.UserResponse, error) {
	if errs := models.ValidateStruct(request); len(errs) > 0 {
		return nil, apiError.New("invalid signup details", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.authRepo.IsEmailExist(request.Email); err != nil {
		log.Printf("SignupUser: %v", err)
		return nil, apiError.New("email already exists", http.StatusBadRequest)
	}
	if err := s.authRepo.IsPhoneExist(request.Telephone); err != nil {
		log.Printf("SignupUser: %v", err)
		return nil, apiError.New("phone number already exists", http.StatusBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		Fullname:       request.Fullname,
		Telephone:      request.Telephone,
		UpiID:          request.UpiID,
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
	}

	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	created, err := s.authRepo.FindUserByEmail(user.Email)
	if err != nil {
		log.Printf("SignupUser error fetching created user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return toUserResponse(created), nil
}

func GenerateHashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashedPassword), err
}

func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	user, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
		}
		log.Printf("LoginUser: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}
	if user.IsBlocked {
		return nil, apiError.InActiveUserError
	}

	if err := user.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(user.Email, s.Config.JWTSecret, user.IsAdmin(), user.ID)
	if err != nil {
		log.Printf("LoginUser error generating token pair: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: *toUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) GetUserProfile(userID uint) (*models.UserResponse, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		return nil, apiError.ErrUpstreamUnavailable
	}
	return toUserResponse(user), nil
}

func (s *authService) EditUserProfile(userID uint, details *models.EditProfileRequest) error {
	if errs := models.ValidateStruct(details); len(errs) > 0 {
		return apiError.New("invalid profile details", http.StatusBadRequest)
	}
	if err := s.authRepo.EditUserProfile(userID, details); err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("EditUserProfile: %v", err)
		return apiError.ErrUpstreamUnavailable
	}
	return nil
}

func (s *authService) GetAllUsers() ([]models.User, error) {
	users, err := s.authRepo.GetAllUsers()
	if err != nil {
		log.Printf("GetAllUsers: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}
	return users, nil
}

func (s *authService) GetRoleByName(name string) (*models.Role, error) {
	return s.authRepo.FindRoleByName(name)
}

func (s *authService) SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error {
	user, err := s.authRepo.FindUserByEmail(request.Email)
	if err != nil {
		return apiError.New("user not found", http.StatusNotFound)
	}

	resetToken, err := jwt.GeneratePasswordResetToken(user.ID, s.Config.JWTSecret)
	if err != nil {
		log.Printf("SendEmailForPasswordReset: generating token: %v", err)
		return apiError.ErrInternalServerError
	}

	baseURL := s.Config.BaseUrl
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	resetLink := baseURL + "/reset-password/" + resetToken

	if _, err := s.Mail.SendResetPassword(user.Email, resetLink); err != nil {
		log.Printf("SendEmailForPasswordReset: sending mail: %v", err)
		return apiError.ErrUpstreamUnavailable
	}
	return nil
}

func (s *authService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	if request.Password != request.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	userID, err := jwt.ValidatePasswordResetToken(token, s.Config.JWTSecret)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	hashedPassword, err := GenerateHashPassword(request.Password)
	if err != nil {
		log.Printf("ResetPassword: hashing: %v", err)
		return apiError.ErrInternalServerError
	}

	if err := s.authRepo.UpdatePassword(userID, hashedPassword); err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("ResetPassword: %v", err)
		return apiError.ErrUpstreamUnavailable
	}
	return nil
}
