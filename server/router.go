package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})
	limitLogin := limitRateForAuth(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", limitLogin, s.handleLogin())
	apirouter.POST("/password/forgot", limitLogin, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())
	apirouter.GET("/tasks", s.handleListTasks())
	apirouter.GET("/tasks/:id", s.handleGetTask())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me/updateUserProfile", s.handleEditUserProfile())
	authorized.GET("/me/transactions", s.handleGetMyTransactions())
	authorized.GET("/me/wallet", s.handleGetWallet())
	authorized.POST("/tasks/:id/start", s.handleStartTask())

	admin := authorized.Group("/admin")
	admin.Use(s.AdminOnly())
	admin.POST("/tasks", s.handleCreateTask())
	admin.DELETE("/tasks/:id", s.handleDeleteTask())
	admin.GET("/users", s.handleAdminListUsers())
	admin.GET("/users/:id/transactions", s.handleAdminUserTransactions())
	admin.GET("/transactions", s.handleAdminListTransactions())
	admin.PUT("/transactions/:id/status", s.handleUpdateTransactionStatus())
}
