// ticketctl is the ops companion to the Lambda functions: it provisions the
// DynamoDB tables and seeds users and bookings so the stream trigger can be
// exercised end to end.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/lithammer/shortuuid"
	"github.com/spf13/cobra"

	"github.com/venuelab/ticketfns/internal/config"
	"github.com/venuelab/ticketfns/internal/model"
	"github.com/venuelab/ticketfns/internal/push"
	"github.com/venuelab/ticketfns/internal/store"
	"github.com/venuelab/ticketfns/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ticketctl",
		Short:         "Manage the ticket-booking tables and send test pushes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTablesCmd())
	root.AddCommand(newSeedUserCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newPushCmd())
	return root
}

func loadConfig() (config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

func openStore(cfg config.Config) *store.Store {
	return store.New(store.NewClient(cfg.AWSRegion, cfg.DynamoEndpoint))
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Create the bookings and users tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s := openStore(cfg)
			ctx := cmd.Context()
			// bookings carries the stream that drives the notify function
			if err := s.CreateTable(ctx, cfg.BookingsTable, true); err != nil {
				return err
			}
			if err := s.CreateTable(ctx, cfg.UsersTable, false); err != nil {
				return err
			}
			fmt.Printf("tables ready: %s, %s\n", cfg.BookingsTable, cfg.UsersTable)
			return nil
		},
	}
}

func newSeedUserCmd() *cobra.Command {
	var id, token string
	cmd := &cobra.Command{
		Use:   "seed-user",
		Short: "Create a user with an optional FCM token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fields := store.Document{}
			if token != "" {
				fields["fcmToken"] = token
			}
			created, err := openStore(cfg).PutDocument(cmd.Context(), cfg.UsersTable, id, fields)
			if err != nil {
				return err
			}
			if !created {
				return fmt.Errorf("user %s already exists", id)
			}
			fmt.Printf("user %s created\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "user id")
	cmd.Flags().StringVar(&token, "token", "", "FCM delivery token")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newBookCmd() *cobra.Command {
	var userID, eventName string
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Create a booking (fires the notification trigger)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			id := shortuuid.New()
			fields := store.Document{"eventName": eventName}
			if userID != "" {
				fields["userId"] = userID
			}
			created, err := openStore(cfg).PutDocument(cmd.Context(), cfg.BookingsTable, id, fields)
			if err != nil {
				return err
			}
			if !created {
				return fmt.Errorf("booking id collision on %s", id)
			}
			fmt.Printf("booking %s created\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "booking owner's user id")
	cmd.Flags().StringVar(&eventName, "event", "", "event display name")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func newPushCmd() *cobra.Command {
	var token, title, body string
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Send a test push straight to a device token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateNotify(); err != nil {
				return err
			}
			lg := logger.New(cfg.LogLevel)
			gateway := push.NewFCMClient(cfg.FCMServerKey, cfg.FCMEndpoint, cfg.FCMTimeout)
			messageID, err := gateway.Send(cmd.Context(), &model.NotificationMessage{
				Title: title,
				Body:  body,
				Token: token,
			})
			if err != nil {
				return err
			}
			lg.Info("test push sent", "messageId", messageID)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "FCM delivery token")
	cmd.Flags().StringVar(&title, "title", "Ticket Confirmed 🎟️", "notification title")
	cmd.Flags().StringVar(&body, "body", "This is a test notification", "notification body")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
