package db

import (
	"log"

	"github.com/Gupta-Developer/earnbyapps/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	IsPhoneExist(telephone string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	EditUserProfile(userID uint, details *models.EditProfileRequest) error
	UpdatePassword(userID uint, hashedPassword string) error
	GetAllUsers() ([]models.User, error)
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	FindRoleByName(name string) (*models.Role, error)
	GetUserRoleByUserID(userID uint) (*models.Role, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}

	// Every new account gets the User role unless one was assigned upstream.
	if user.RoleID == uuid.Nil {
		role, err := a.FindRoleByName(models.RoleUser)
		if err != nil {
			return nil, errors.Wrap(err, "resolving default role")
		}
		user.RoleID = role.ID
	}

	if err := a.DB.Create(user).Error; err != nil {
		log.Printf("CreateUser error: %v", err)
		return nil, err
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) IsPhoneExist(telephone string) error {
	if telephone == "" {
		return nil
	}
	var count int64
	err := a.DB.Model(&models.User{}).Where("telephone = ?", telephone).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("phone number already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.DB.Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := a.DB.Preload("Role").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) EditUserProfile(userID uint, details *models.EditProfileRequest) error {
	result := a.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"fullname":  details.Fullname,
		"telephone": details.Telephone,
		"upi_id":    details.UpiID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) UpdatePassword(userID uint, hashedPassword string) error {
	result := a.DB.Model(&models.User{}).Where("id = ?", userID).Update("hashed_password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := a.DB.Preload("Role").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		log.Printf("blacklist lookup error: %v", err)
		return false
	}
	return count > 0
}

func (a *authRepo) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (a *authRepo) GetUserRoleByUserID(userID uint) (*models.Role, error) {
	user, err := a.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return &user.Role, nil
}
