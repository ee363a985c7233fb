package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"

	"github.com/dropsim/dropctl/pkg/net"
)

// Notifier delivers order events to an external webhook endpoint. Failed
// deliveries retry with exponential backoff.
type Notifier struct {
	url    string
	client *http.Client
}

// NewNotifier builds a Notifier for the URL. A non-empty token is sent as
// a bearer credential on every delivery.
func NewNotifier(ctx context.Context, url, token string) *Notifier {
	return &Notifier{url: url, client: net.GetBearerClient(ctx, token)}
}

// Event is the webhook payload for one order transition.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Order     *Order    `json:"order"`
}

// Notify posts the order event, retrying transient failures until the
// context is done or the backoff gives up.
func (n *Notifier) Notify(ctx context.Context, eventType string, o *Order) error {
	if n.url == "" {
		return nil
	}

	body, err := json.Marshal(Event{Type: eventType, Timestamp: time.Now().UTC(), Order: o})
	if err != nil {
		return errors.Wrap(err, "error marshaling webhook event")
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(time.Minute),
	), ctx)

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			slog.Debug("webhook delivery failed, retrying", "url", n.url, "error", err)
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			net.PrintHTTPResponse(resp)
			return backoff.Permanent(fmt.Errorf("webhook rejected: %s", resp.Status))
		default:
			slog.Debug("webhook delivery failed, retrying", "url", n.url, "status", resp.Status)
			return fmt.Errorf("webhook returned %s", resp.Status)
		}
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return errors.Wrapf(err, "error delivering webhook for order %s", o.ID)
	}
	return nil
}
