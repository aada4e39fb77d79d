package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Gupta-Developer/earnbyapps/config"
	"github.com/Gupta-Developer/earnbyapps/db"
	apiError "github.com/Gupta-Developer/earnbyapps/errors"
	"github.com/Gupta-Developer/earnbyapps/mailingservices"
	"github.com/Gupta-Developer/earnbyapps/server/response"
	"github.com/Gupta-Developer/earnbyapps/services"
	"github.com/gin-gonic/gin"
)

type Server struct {
	Config                *config.Config
	Mail                  *mailingservices.Mailgun
	AuthRepository        db.AuthRepository
	TaskRepository        db.TaskRepository
	TransactionRepository db.TransactionRepository
	AuthService           services.AuthService
	TaskService           services.TaskService
	WalletService         services.WalletService
	MediaService          services.MediaService
	DB                    db.GormDB
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to ten seconds.
func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}

func decode(c *gin.Context, v interface{}) error {
	return c.ShouldBindJSON(v)
}

func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *apiError.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}
