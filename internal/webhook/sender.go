package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"samuro/internal/ladder"
	"samuro/pkg/config"
)

type Payload struct {
	Event     string    `json:"event"`
	SessionID int64     `json:"session_id"`
	RoomID    string    `json:"room_id"`
	Type      string    `json:"type"`
	Map       string    `json:"map,omitempty"`
	Winner    string    `json:"winner"`
	Blue      []int64   `json:"blue"`
	Red       []int64   `json:"red"`
	Timestamp time.Time `json:"timestamp"`
}

// NotifyResult posts a concluded session to the configured result webhook.
// A missing URL disables the feature.
func NotifyResult(sess *ladder.MatchSession) {
	url := config.Secrets.WebhookURL
	if url == "" {
		return
	}

	payload := Payload{
		Event:     "session_concluded",
		SessionID: sess.ID,
		RoomID:    sess.RoomID,
		Type:      string(sess.Type),
		Map:       sess.Map,
		Winner:    string(sess.Winner),
		Blue:      sess.Blue,
		Red:       sess.Red,
		Timestamp: time.Now(),
	}

	// Send asynchronously
	go func(targetURL string, p Payload) {
		jsonBytes, _ := json.Marshal(p)

		client := http.Client{
			Timeout: 5 * time.Second,
		}

		resp, err := client.Post(targetURL, "application/json", bytes.NewBuffer(jsonBytes))
		if err != nil {
			log.Warn().Err(err).Int64("session", p.SessionID).Msg("failed to trigger result webhook")
			return
		}
		defer resp.Body.Close()
	}(url, payload)
}

func TestWebhook(url string) error {
	payload := Payload{
		Event:     "test",
		Timestamp: time.Now(),
	}
	jsonBytes, _ := json.Marshal(payload)
	client := http.Client{Timeout: 5 * time.Second}
	_, err := client.Post(url, "application/json", bytes.NewBuffer(jsonBytes))
	return err
}
