package config

import (
	"sort"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds everything the functions and the ops CLI read from the
// environment. Secrets are env-only; each entry point validates just the
// keys it needs.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Tables
	BookingsTable string `envconfig:"BOOKINGS_TABLE" default:"bookings"`
	UsersTable    string `envconfig:"USERS_TABLE" default:"users"`

	// AWS
	AWSRegion      string `envconfig:"AWS_REGION" default:"us-east-1"`
	DynamoEndpoint string `envconfig:"DYNAMO_ENDPOINT"`

	// Payment processor
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`

	// Push gateway
	FCMServerKey string        `envconfig:"FCM_SERVER_KEY"`
	FCMEndpoint  string        `envconfig:"FCM_ENDPOINT" default:"https://fcm.googleapis.com/fcm/send"`
	FCMTimeout   time.Duration `envconfig:"FCM_TIMEOUT" default:"10s"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// ValidatePayment checks the keys the payment-intent function requires.
func (c Config) ValidatePayment() error {
	return requireAll(map[string]string{
		"STRIPE_SECRET_KEY": c.StripeSecretKey,
	})
}

// ValidateNotify checks the keys the booking-notification function requires.
func (c Config) ValidateNotify() error {
	return requireAll(map[string]string{
		"FCM_SERVER_KEY": c.FCMServerKey,
	})
}

func requireAll(keys map[string]string) error {
	var missing []string
	for name, value := range keys {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.Errorf("missing required environment variables: %v", missing)
	}
	return nil
}
