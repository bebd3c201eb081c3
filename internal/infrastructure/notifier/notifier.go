package notifier

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
)

// HTTPNotifier forwards notification signals to the external delivery
// service. Failures are logged, never propagated: notification delivery
// is best-effort and must not fail the business operation.
type HTTPNotifier struct {
	CallbackURL string
}

func NewHTTPNotifier(callbackURL string) *HTTPNotifier {
	return &HTTPNotifier{CallbackURL: callbackURL}
}

func (n *HTTPNotifier) Notify(notification domain.Notification) error {
	if n.CallbackURL == "" {
		return nil
	}

	go func() {
		body, err := json.Marshal(notification)
		if err != nil {
			log.Printf("Failed to marshal notification: %v\n", err)
			return
		}

		req, err := http.NewRequest("POST", n.CallbackURL, bytes.NewBuffer(body))
		if err != nil {
			log.Printf("Failed to create notification request: %v\n", err)
			return
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			log.Printf("Notification callback failed: %v\n", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			log.Printf("Notification callback returned status %d", resp.StatusCode)
		}
	}()

	return nil
}
