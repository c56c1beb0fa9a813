package main

import (
	"log"

	"github.com/haulmatch/loadboard/config"
	"github.com/haulmatch/loadboard/db"
	"github.com/haulmatch/loadboard/mailingservices"
	"github.com/haulmatch/loadboard/server"
	"github.com/haulmatch/loadboard/services"
	"github.com/haulmatch/loadboard/ws"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	gormDB := db.GetDB(conf)
	if err := db.SeedAdmin(gormDB.DB, conf); err != nil {
		log.Fatalf("error seeding admin: %v", err)
	}

	authRepo := db.NewAuthRepo(gormDB)
	loadRepo := db.NewLoadRepo(gormDB)
	truckRepo := db.NewTruckRepo(gormDB)
	applicationRepo := db.NewApplicationRepo(gormDB)
	reviewRepo := db.NewReviewRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)

	hub := ws.NewHub()

	authService := services.NewAuthService(authRepo, conf)
	loadService := services.NewLoadService(loadRepo, conf)
	truckService := services.NewTruckService(truckRepo, conf)
	applicationService := services.NewApplicationService(applicationRepo, loadRepo, mailgunClient, conf)
	reviewService := services.NewReviewService(reviewRepo, loadRepo, applicationRepo, authRepo, conf)
	messageService := services.NewMessageService(messageRepo, authRepo, hub, conf)

	// Messages arriving over the socket take the same persist-then-
	// publish path as REST sends.
	hub.OnMessage = func(senderID, receiverID uint, content string) error {
		_, apiErr := messageService.SendMessage(senderID, receiverID, content)
		if apiErr != nil {
			return apiErr
		}
		return nil
	}

	s := &server.Server{
		Config:             conf,
		Mail:               mailgunClient,
		Hub:                hub,
		AuthRepository:     authRepo,
		AuthService:        authService,
		LoadService:        loadService,
		TruckService:       truckService,
		ApplicationService: applicationService,
		ReviewService:      reviewService,
		MessageService:     messageService,
	}

	s.Start()
}
