package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/venuelab/ticketfns/internal/config"
	"github.com/venuelab/ticketfns/internal/handler"
	"github.com/venuelab/ticketfns/internal/payments"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.ValidatePayment(); err != nil {
		log.Fatalf("config: %v", err)
	}

	authorizer := payments.NewStripeAuthorizer(cfg.StripeSecretKey)
	lambda.Start(handler.NewPaymentIntent(authorizer).Handle)
}
