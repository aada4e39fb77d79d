package db

import (
	"github.com/Gupta-Developer/earnbyapps/models"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	CreateTransaction(txn *models.Transaction) (*models.Transaction, error)
	GetTransactionByID(id uint) (*models.Transaction, error)
	GetTransactionsByUserID(userID uint) ([]models.Transaction, error)
	GetAllTransactions() ([]models.Transaction, error)
	UpdateTransactionStatus(id uint, status models.TransactionStatus) error
}

type transactionRepo struct {
	DB *gorm.DB
}

func NewTransactionRepo(db *GormDB) TransactionRepository {
	return &transactionRepo{db.DB}
}

func (r *transactionRepo) CreateTransaction(txn *models.Transaction) (*models.Transaction, error) {
	if err := r.DB.Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *transactionRepo) GetTransactionByID(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.DB.First(&txn, id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepo) GetTransactionsByUserID(userID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepo) GetAllTransactions() ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := r.DB.Order("created_at DESC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// UpdateTransactionStatus overwrites the status field unconditionally; the
// service layer decides whether the caller is allowed to do so.
func (r *transactionRepo) UpdateTransactionStatus(id uint, status models.TransactionStatus) error {
	result := r.DB.Model(&models.Transaction{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
