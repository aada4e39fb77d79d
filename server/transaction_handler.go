package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/Gupta-Developer/earnbyapps/errors"
	"github.com/Gupta-Developer/earnbyapps/models"
	"github.com/Gupta-Developer/earnbyapps/server/response"
	"github.com/Gupta-Developer/earnbyapps/services"
)

func (s *Server) handleStartTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		taskID, ok := parseIDParam(c)
		if !ok {
			return
		}

		txn, err := s.WalletService.StartTask(user.ID, taskID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "task started", http.StatusCreated, txn, nil)
	}
}

func (s *Server) handleGetMyTransactions() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		txns, err := s.WalletService.UserTransactions(user.ID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, txns, nil)
	}
}

func (s *Server) handleGetWallet() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		wallet, err := s.WalletService.UserWallet(user.ID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, wallet, nil)
	}
}

// handleAdminListUsers lists every (user, transactions) pair, filtered by the
// optional free-text ?q= query.
func (s *Server) handleAdminListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		results, err := s.WalletService.SearchUsers(query)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, results, nil)
	}
}

func (s *Server) handleAdminListTransactions() gin.HandlerFunc {
	return func(c *gin.Context) {
		txns, err := s.WalletService.AllTransactions()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, txns, nil)
	}
}

func (s *Server) handleAdminUserTransactions() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseIDParam(c)
		if !ok {
			return
		}
		txns, err := s.WalletService.UserTransactions(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{
			"transactions": txns,
			"total":        models.FormatAmount(services.TotalEarnings(txns)),
		}, nil)
	}
}

func (s *Server) handleUpdateTransactionStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		transactionID, ok := parseIDParam(c)
		if !ok {
			return
		}

		var request models.UpdateStatusRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		status, err := models.ParseTransactionStatus(request.Status)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		ack, ackErr := s.WalletService.UpdateTransactionStatus(user, transactionID, status)
		if ackErr != nil {
			response.HandleErrors(c, ackErr)
			return
		}
		response.JSON(c, ack.Message, http.StatusOK, ack, nil)
	}
}
