package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"hrforge-backend/shared/config"
)

// NotificationSender is the capability the hierarchy components depend on.
// Delivery and formatting live in an external service; failures are logged
// and never propagated to the caller of a hierarchy mutation.
type NotificationSender interface {
	Send(userID string, payload NotificationPayload)
}

// NotificationPayload is the wire contract with the notification service.
type NotificationPayload struct {
	Type    string                 `json:"type"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// NotificationClient handles communication with the notification service
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotificationClient creates a new notification client
func NewNotificationClient() *NotificationClient {
	cfg := config.GetConfig()
	return &NotificationClient{
		baseURL: cfg.NotificationServiceURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type sendRequest struct {
	UserID string `json:"user_id"`
	NotificationPayload
}

// Send delivers a notification fire-and-forget. Errors are swallowed after
// logging so a notification outage can never fail a hire or termination.
func (nc *NotificationClient) Send(userID string, payload NotificationPayload) {
	go func() {
		if err := nc.post("/api/notifications/send", sendRequest{UserID: userID, NotificationPayload: payload}); err != nil {
			log.Printf("⚠️ Notification send failed for user %s: %v", userID, err)
		}
	}()
}

func (nc *NotificationClient) post(endpoint string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %v", err)
	}

	url := fmt.Sprintf("%s%s", nc.baseURL, endpoint)
	resp, err := nc.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notification service returned status: %d", resp.StatusCode)
	}

	return nil
}
