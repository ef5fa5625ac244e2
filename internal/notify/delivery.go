package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/acmeshop/checkout/internal/domain"
	"github.com/acmeshop/checkout/internal/port"
)

// deliveryPath is the fixed resource path on the delivery-processing endpoint.
const deliveryPath = "/api/DeliveryOrderProcessor"

type DeliveryConfig struct {
	BaseURL string
}

type deliveryNotifier struct {
	url    string
	client *http.Client
}

func NewDeliveryNotifier(cfg DeliveryConfig, client *http.Client) (port.DeliveryNotifier, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &deliveryNotifier{
		url:    strings.TrimRight(cfg.BaseURL, "/") + deliveryPath,
		client: client,
	}, nil
}

// Notify POSTs the payload to the delivery endpoint as indented JSON.
// One attempt, no retry; a non-2xx status is an error for the caller to absorb.
func (n *deliveryNotifier) Notify(ctx context.Context, payload domain.NotificationPayload) error {
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("delivery endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
