package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/Gupta-Developer/earnbyapps/config"
	"github.com/Gupta-Developer/earnbyapps/db"
	apiError "github.com/Gupta-Developer/earnbyapps/errors"
	"github.com/Gupta-Developer/earnbyapps/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EarnedStatuses is the set of transaction statuses counted toward a user's
// displayed wallet total. Funds show as earned once approved, before actual
// payout. This is the single most consequential business rule in the system;
// change it here, nowhere else.
var EarnedStatuses = map[models.TransactionStatus]bool{
	models.StatusApproved: true,
	models.StatusPaid:     true,
}

// WalletService owns the transaction ledger: starting a task creates an
// entry, admins move entries through the status workflow, and wallet totals
// are derived fresh from the entry set on every read.
type WalletService interface {
	StartTask(userID uint, taskID uint) (*models.Transaction, error)
	UpdateTransactionStatus(requester *models.User, transactionID uint, target models.TransactionStatus) (*models.StatusChangeAck, error)
	UserTransactions(userID uint) ([]models.Transaction, error)
	AllTransactions() ([]models.Transaction, error)
	UserWallet(userID uint) (*models.WalletResponse, error)
	SearchUsers(query string) ([]models.UserWithTransactions, error)
}

type walletService struct {
	Config          *config.Config
	authRepo        db.AuthRepository
	taskRepo        db.TaskRepository
	transactionRepo db.TransactionRepository
}

func NewWalletService(authRepo db.AuthRepository, taskRepo db.TaskRepository, transactionRepo db.TransactionRepository, conf *config.Config) WalletService {
	return &walletService{
		Config:          conf,
		authRepo:        authRepo,
		taskRepo:        taskRepo,
		transactionRepo: transactionRepo,
	}
}

// TotalEarnings sums the amounts of the transactions whose status is in
// EarnedStatuses. Zero for an empty set or when nothing qualifies.
func TotalEarnings(txns []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if EarnedStatuses[t.Status] {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// MatchesQuery reports whether a user or any of their transactions matches
// the free-text query. Matching is case-insensitive substring over full
// name, email, phone, UPI id and owned transaction titles. An empty query
// matches everyone.
func MatchesQuery(user *models.User, txns []models.Transaction, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{user.Fullname, user.Email, user.Telephone, user.UpiID} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, t := range txns {
		if strings.Contains(strings.ToLower(t.TaskName), q) {
			return true
		}
	}
	return false
}

// StartTask records a user's attempt at a task. Title and amount are
// snapshotted so later task edits do not rewrite history.
func (s *walletService) StartTask(userID uint, taskID uint) (*models.Transaction, error) {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("task not found", apiError.ErrNotFound.Status)
		}
		log.Printf("StartTask: fetching task %d: %v", taskID, err)
		return nil, apiError.ErrUpstreamUnavailable
	}

	txn := &models.Transaction{
		UserID:   userID,
		TaskID:   task.ID,
		TaskName: task.Name,
		Amount:   task.Amount,
		Status:   models.StatusUnderVerification,
	}
	created, err := s.transactionRepo.CreateTransaction(txn)
	if err != nil {
		log.Printf("StartTask: creating transaction: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}
	return created, nil
}

// UpdateTransactionStatus validates and applies a requested status change.
// Only admins may transition; the target may be any status, including a
// "backward" move like Paid to Rejected. Wallet totals are never touched
// here, they are derived on read.
func (s *walletService) UpdateTransactionStatus(requester *models.User, transactionID uint, target models.TransactionStatus) (*models.StatusChangeAck, error) {
	if requester == nil || !requester.IsAdmin() {
		return nil, apiError.ErrUnauthorized
	}
	if !target.Valid() {
		return nil, apiError.New(fmt.Sprintf("unknown status %q", target), apiError.ErrBadRequest.Status)
	}

	txn, err := s.transactionRepo.GetTransactionByID(transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("transaction not found", apiError.ErrNotFound.Status)
		}
		log.Printf("UpdateTransactionStatus: fetching transaction %d: %v", transactionID, err)
		return nil, apiError.ErrUpstreamUnavailable
	}

	previous := txn.Status
	if err := s.transactionRepo.UpdateTransactionStatus(transactionID, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("transaction not found", apiError.ErrNotFound.Status)
		}
		log.Printf("UpdateTransactionStatus: updating transaction %d: %v", transactionID, err)
		return nil, apiError.ErrUpstreamUnavailable
	}

	return &models.StatusChangeAck{
		TransactionID:  txn.ID,
		TaskName:       txn.TaskName,
		PreviousStatus: previous,
		Status:         target,
		Message:        fmt.Sprintf("transaction %d (%s) marked %s", txn.ID, txn.TaskName, target),
	}, nil
}

// UserTransactions returns a user's transactions with dangling task
// references filtered out. A transaction whose task was deleted out of band
// is a data-quality condition, not an error; partial results win over strict
// consistency.
func (s *walletService) UserTransactions(userID uint) ([]models.Transaction, error) {
	txns, err := s.transactionRepo.GetTransactionsByUserID(userID)
	if err != nil {
		log.Printf("UserTransactions: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}
	return s.filterDangling(txns)
}

// AllTransactions returns the whole ledger for the admin overview, newest
// first, with the same dangling-reference filtering as the per-user reads.
func (s *walletService) AllTransactions() ([]models.Transaction, error) {
	txns, err := s.transactionRepo.GetAllTransactions()
	if err != nil {
		log.Printf("AllTransactions: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}
	return s.filterDangling(txns)
}

func (s *walletService) filterDangling(txns []models.Transaction) ([]models.Transaction, error) {
	liveTasks, err := s.taskRepo.GetTaskIDs()
	if err != nil {
		log.Printf("filterDangling: loading task ids: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}
	kept := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if liveTasks[t.TaskID] {
			kept = append(kept, t)
		}
	}
	return kept, nil
}

// UserWallet derives the user's wallet view from the current transaction
// set.
func (s *walletService) UserWallet(userID uint) (*models.WalletResponse, error) {
	txns, err := s.UserTransactions(userID)
	if err != nil {
		return nil, err
	}
	total := TotalEarnings(txns)
	return &models.WalletResponse{
		Total:        total,
		Display:      models.FormatAmount(total),
		Transactions: txns,
	}, nil
}

// SearchUsers returns (user, transactions) pairs matching the query, every
// pair when the query is empty. The filtering is a pure projection over
// already-loaded data, not a query pushed to storage.
func (s *walletService) SearchUsers(query string) ([]models.UserWithTransactions, error) {
	users, err := s.authRepo.GetAllUsers()
	if err != nil {
		log.Printf("SearchUsers: loading users: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}

	liveTasks, err := s.taskRepo.GetTaskIDs()
	if err != nil {
		log.Printf("SearchUsers: loading task ids: %v", err)
		return nil, apiError.ErrUpstreamUnavailable
	}

	results := make([]models.UserWithTransactions, 0, len(users))
	for i := range users {
		user := &users[i]
		txns, err := s.transactionRepo.GetTransactionsByUserID(user.ID)
		if err != nil {
			log.Printf("SearchUsers: loading transactions for user %d: %v", user.ID, err)
			return nil, apiError.ErrUpstreamUnavailable
		}
		kept := make([]models.Transaction, 0, len(txns))
		for _, t := range txns {
			if liveTasks[t.TaskID] {
				kept = append(kept, t)
			}
		}
		if !MatchesQuery(user, kept, query) {
			continue
		}
		results = append(results, models.UserWithTransactions{
			User: models.UserResponse{
				ID:        user.ID,
				Fullname:  user.Fullname,
				Telephone: user.Telephone,
				UpiID:     user.UpiID,
				Email:     user.Email,
				RoleName:  user.Role.Name,
			},
			Transactions: kept,
			Total:        TotalEarnings(kept).StringFixed(2),
		})
	}
	return results, nil
}
