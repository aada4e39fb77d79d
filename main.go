package main

import (
	"log"

	"github.com/Gupta-Developer/earnbyapps/config"
	"github.com/Gupta-Developer/earnbyapps/db"
	"github.com/Gupta-Developer/earnbyapps/mailingservices"
	"github.com/Gupta-Developer/earnbyapps/server"
	"github.com/Gupta-Developer/earnbyapps/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	taskRepo := db.NewTaskRepo(gormDB)
	transactionRepo := db.NewTransactionRepo(gormDB)

	mediaService, err := services.NewMediaService(conf)
	if err != nil {
		log.Fatalf("error initializing media service: %v", err)
	}
	authService := services.NewAuthService(authRepo, mailgunClient, conf)
	taskService := services.NewTaskService(taskRepo, mediaService, conf)
	walletService := services.NewWalletService(authRepo, taskRepo, transactionRepo, conf)

	s := &server.Server{
		Mail:                  mailgunClient,
		Config:                conf,
		AuthRepository:        authRepo,
		TaskRepository:        taskRepo,
		TransactionRepository: transactionRepo,
		AuthService:           authService,
		TaskService:           taskService,
		WalletService:         walletService,
		MediaService:          mediaService,
		DB:                    *gormDB,
	}

	s.Start()
}
