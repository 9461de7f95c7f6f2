package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/venuelab/ticketfns/internal/model"
	"github.com/venuelab/ticketfns/internal/push"
	"github.com/venuelab/ticketfns/internal/store"
)

const confirmedTitle = "Ticket Confirmed 🎟️"

// DocumentGetter is the slice of the store the notify handler reads through.
type DocumentGetter interface {
	GetDocument(ctx context.Context, tablename, id string) (store.Document, error)
}

// BookingNotification reacts to booking inserts by pushing a confirmation to
// the booking owner's device. Delivery is best effort: no failure in this
// handler ever reaches the stream, so booking events are never retried
// because of notification problems.
type BookingNotification struct {
	store      DocumentGetter
	gateway    push.Gateway
	usersTable string
	logger     *slog.Logger
}

func NewBookingNotification(docs DocumentGetter, gateway push.Gateway, usersTable string, logger *slog.Logger) *BookingNotification {
	return &BookingNotification{
		store:      docs,
		gateway:    gateway,
		usersTable: usersTable,
		logger:     logger,
	}
}

// Handle processes a DynamoDB stream batch. Only INSERT records are
// considered; each is handled independently and the batch always succeeds.
func (h *BookingNotification) Handle(ctx context.Context, ev events.DynamoDBEvent) error {
	for _, record := range ev.Records {
		if record.EventName != string(events.DynamoDBOperationTypeInsert) {
			continue
		}
		h.notify(ctx, record)
	}
	return nil
}

func (h *BookingNotification) notify(ctx context.Context, record events.DynamoDBEventRecord) {
	var booking model.Booking
	if err := store.DecodeImage(record.Change.NewImage, &booking); err != nil {
		h.logger.Error("undecodable booking image", slog.String("eventId", record.EventID), slog.Any("error", err))
		return
	}
	if booking.ID == "" {
		if id, ok := keyString(record.Change.Keys, "id"); ok {
			booking.ID = id
		}
	}

	if booking.UserID == "" {
		h.logger.Info("booking has no userId, skipping notification", slog.String("bookingId", booking.ID))
		return
	}

	user, err := h.store.GetDocument(ctx, h.usersTable, booking.UserID)
	if err != nil {
		h.logger.Error("user lookup failed", slog.String("userId", booking.UserID), slog.Any("error", err))
		return
	}
	token, ok := user.Field("fcmToken")
	if !ok {
		h.logger.Info("no fcm token for user, skipping notification", slog.String("userId", booking.UserID))
		return
	}

	msg := &model.NotificationMessage{
		Title: confirmedTitle,
		Body:  fmt.Sprintf("Your ticket for %s is confirmed!", booking.EventName),
		Token: token,
	}

	dispatchID := uuid.NewString()
	messageID, err := h.gateway.Send(ctx, msg)
	if err != nil {
		h.logger.Error("push dispatch failed",
			slog.String("dispatchId", dispatchID),
			slog.String("bookingId", booking.ID),
			slog.Any("error", err))
		return
	}
	h.logger.Info("push notification sent",
		slog.String("dispatchId", dispatchID),
		slog.String("bookingId", booking.ID),
		slog.String("messageId", messageID))
}

func keyString(keys map[string]events.DynamoDBAttributeValue, name string) (string, bool) {
	av, ok := keys[name]
	if !ok || av.DataType() != events.DataTypeString {
		return "", false
	}
	return av.String(), true
}
