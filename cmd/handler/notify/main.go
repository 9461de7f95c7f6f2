package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/venuelab/ticketfns/internal/config"
	"github.com/venuelab/ticketfns/internal/handler"
	"github.com/venuelab/ticketfns/internal/push"
	"github.com/venuelab/ticketfns/internal/store"
	"github.com/venuelab/ticketfns/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.ValidateNotify(); err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(cfg.LogLevel)
	docs := store.New(store.NewClient(cfg.AWSRegion, cfg.DynamoEndpoint))
	gateway := push.NewFCMClient(cfg.FCMServerKey, cfg.FCMEndpoint, cfg.FCMTimeout)

	lambda.Start(handler.NewBookingNotification(docs, gateway, cfg.UsersTable, lg).Handle)
}
