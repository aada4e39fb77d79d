package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/Gupta-Developer/earnbyapps/errors"
	"github.com/Gupta-Developer/earnbyapps/models"
	"github.com/Gupta-Developer/earnbyapps/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.SignupRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		userResponse, err := s.AuthService.SignupUser(&request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		subject := "Welcome to EarnByApps!"
		if _, err := s.Mail.SendWelcomeMessage(request.Email, subject); err != nil {
			// mail is best effort, signup already succeeded
			log.Printf("Error sending welcome email: %v", err)
		}

		response.JSON(c, "signup successful", http.StatusCreated, userResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		tokenValue, exists := c.Get("access_token")
		accessToken, ok := tokenValue.(string)
		if !exists || !ok || user == nil {
			respondAndAbort(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		blacklist := &models.Blacklist{
			Email: user.Email,
			Token: accessToken,
		}
		if err := s.AuthRepository.AddToBlackList(blacklist); err != nil {
			log.Printf("logout: blacklisting token: %v", err)
			respondAndAbort(c, "logout failed", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		profile, err := s.AuthService.GetUserProfile(user.ID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleEditUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var details models.EditProfileRequest
		if err := decode(c, &details); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.AuthService.EditUserProfile(user.ID, &details); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "profile updated", http.StatusOK, nil, nil)
	}
}
