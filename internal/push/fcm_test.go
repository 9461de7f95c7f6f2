package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/venuelab/ticketfns/internal/model"
)

func testMessage() *model.NotificationMessage {
	return &model.NotificationMessage{
		Title: "Ticket Confirmed 🎟️",
		Body:  "Your ticket for Jazz Night is confirmed!",
		Token: "tok123",
	}
}

func TestFCMClient_Send(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"success":1,"failure":0,"results":[{"message_id":"m-1"}]}`))
	}))
	defer srv.Close()

	c := NewFCMClient("server-key", srv.URL, time.Second)
	messageID, err := c.Send(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if messageID != "m-1" {
		t.Errorf("messageID = %q, want m-1", messageID)
	}
	if gotAuth != "key=server-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPayload["to"] != "tok123" {
		t.Errorf("to = %v, want tok123", gotPayload["to"])
	}
	notification, _ := gotPayload["notification"].(map[string]interface{})
	if notification["title"] != "Ticket Confirmed 🎟️" {
		t.Errorf("title = %v", notification["title"])
	}
	if notification["body"] != "Your ticket for Jazz Night is confirmed!" {
		t.Errorf("body = %v", notification["body"])
	}
}

func TestFCMClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewFCMClient("server-key", srv.URL, time.Second)
	if _, err := c.Send(context.Background(), testMessage()); err == nil {
		t.Fatal("expected an error on 503")
	}
}

func TestFCMClient_DeliveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":0,"failure":1,"results":[{"error":"NotRegistered"}]}`))
	}))
	defer srv.Close()

	c := NewFCMClient("server-key", srv.URL, time.Second)
	_, err := c.Send(context.Background(), testMessage())
	if err == nil {
		t.Fatal("expected an error on failed delivery")
	}
	if !strings.Contains(err.Error(), "NotRegistered") {
		t.Errorf("error = %v, want the provider's reason", err)
	}
}

func TestFCMClient_EmptyToken(t *testing.T) {
	c := NewFCMClient("server-key", "http://unused", time.Second)
	msg := testMessage()
	msg.Token = ""
	if _, err := c.Send(context.Background(), msg); err == nil {
		t.Fatal("expected an error on empty token")
	}
}
