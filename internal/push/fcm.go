package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/venuelab/ticketfns/internal/model"
)

// Gateway delivers one push notification to one device. Send returns the
// provider's message id on success.
type Gateway interface {
	Send(ctx context.Context, msg *model.NotificationMessage) (string, error)
}

// FCMClient sends notifications through the FCM HTTP endpoint using
// server-key auth.
type FCMClient struct {
	serverKey string
	endpoint  string
	client    *http.Client
}

func NewFCMClient(serverKey, endpoint string, timeout time.Duration) *FCMClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FCMClient{
		serverKey: serverKey,
		endpoint:  endpoint,
		client:    &http.Client{Timeout: timeout},
	}
}

type fcmRequest struct {
	To           string          `json:"to"`
	Notification fcmNotification `json:"notification"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

func (c *FCMClient) Send(ctx context.Context, msg *model.NotificationMessage) (string, error) {
	if msg.Token == "" {
		return "", fmt.Errorf("fcm: empty token")
	}
	body, err := json.Marshal(fcmRequest{
		To: msg.Token,
		Notification: fcmNotification{
			Title: msg.Title,
			Body:  msg.Body,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fcm: received status %d", resp.StatusCode)
	}

	var fcmResp fcmResponse
	if err := json.NewDecoder(resp.Body).Decode(&fcmResp); err != nil {
		return "", err
	}
	if fcmResp.Failure > 0 {
		reason := "unknown"
		if len(fcmResp.Results) > 0 && fcmResp.Results[0].Error != "" {
			reason = fcmResp.Results[0].Error
		}
		return "", fmt.Errorf("fcm: delivery failed: %s", reason)
	}
	if len(fcmResp.Results) > 0 {
		return fcmResp.Results[0].MessageID, nil
	}
	return "", nil
}
