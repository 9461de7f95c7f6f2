package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/venuelab/ticketfns/internal/model"
	"github.com/venuelab/ticketfns/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAuthorizer struct {
	secret string
	err    error

	calls        int
	lastAmount   int64
	lastCurrency string
}

func (f *fakeAuthorizer) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.calls++
	f.lastAmount = amount
	f.lastCurrency = currency
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}

type fakeStore struct {
	docs map[string]store.Document
	err  error

	calls   int
	lastIDs []string
}

func (f *fakeStore) GetDocument(_ context.Context, _, id string) (store.Document, error) {
	f.calls++
	f.lastIDs = append(f.lastIDs, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.docs[id], nil
}

type fakeGateway struct {
	err error

	calls int
	sent  []*model.NotificationMessage
}

func (f *fakeGateway) Send(_ context.Context, msg *model.NotificationMessage) (string, error) {
	f.calls++
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return "", f.err
	}
	return "msg-1", nil
}
