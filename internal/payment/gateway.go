package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"campusbazaar/internal/models"
)

// GatewayConfig holds the hosted-checkout gateway settings.
type GatewayConfig struct {
	APIURL     string
	StoreID    string
	AuthKey    string
	SuccessURL string
	FailureURL string
	CancelURL  string
}

// HostedGatewayProcessor creates a hosted payment session with the gateway and
// hands the shopper a redirect URL. The outcome stays pending; the gateway's
// callback flips the order to paid once the shopper completes the hosted flow.
type HostedGatewayProcessor struct {
	cfg    GatewayConfig
	client *http.Client
}

// NewHostedGatewayProcessor validates the gateway settings and builds the
// processor. Missing settings fail here so a misconfigured deployment aborts
// before any checkout reaches the gateway.
func NewHostedGatewayProcessor(cfg GatewayConfig) (*HostedGatewayProcessor, error) {
	if cfg.APIURL == "" || cfg.StoreID == "" || cfg.AuthKey == "" {
		return nil, fmt.Errorf("payment gateway configuration missing")
	}
	return &HostedGatewayProcessor{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// gatewaySessionResponse represents the gateway's create-session reply.
type gatewaySessionResponse struct {
	Session struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	} `json:"session"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Charge asks the gateway for a hosted payment session. Any failure here
// surfaces to the caller and aborts checkout; there is no retry.
func (p *HostedGatewayProcessor) Charge(amountMinor int64, currency string) (Outcome, error) {
	payload := map[string]interface{}{
		"method":  "create",
		"store":   p.cfg.StoreID,
		"authkey": p.cfg.AuthKey,
		"order": map[string]interface{}{
			"amount":   amountMinor,
			"currency": currency,
		},
		"return": map[string]string{
			"authorised": p.cfg.SuccessURL,
			"declined":   p.cfg.FailureURL,
			"cancelled":  p.cfg.CancelURL,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, p.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(respBody))
	}

	var session gatewaySessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return Outcome{}, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if session.Error != nil {
		return Outcome{}, fmt.Errorf("payment gateway rejected session: %s", session.Error.Message)
	}
	if session.Session.URL == "" || session.Session.Ref == "" {
		return Outcome{}, fmt.Errorf("payment gateway returned empty session")
	}

	return Outcome{
		Status:      models.PaymentStatusPending,
		Reference:   session.Session.Ref,
		RedirectURL: session.Session.URL,
	}, nil
}
