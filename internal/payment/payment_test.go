package payment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campusbazaar/internal/models"
	"campusbazaar/internal/payment"

	"github.com/stretchr/testify/assert"
)

func TestCODProcessor_Charge(t *testing.T) {
	processor := &payment.CODProcessor{}

	outcome, err := processor.Charge(100000, "INR")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, outcome.Status)
	assert.Empty(t, outcome.Reference)
	assert.Empty(t, outcome.RedirectURL)
}

func TestSimulatedProcessor_Charge(t *testing.T) {
	processor := &payment.SimulatedProcessor{Delay: 0}

	outcome, err := processor.Charge(55000, "INR")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, outcome.Status)
	assert.True(t, strings.HasPrefix(outcome.Reference, "SIM-"))
	assert.Empty(t, outcome.RedirectURL)

	// Every charge gets a fresh reference.
	second, err := processor.Charge(55000, "INR")
	assert.NoError(t, err)
	assert.NotEqual(t, outcome.Reference, second.Reference)
}

func TestNewProcessor_Selection(t *testing.T) {
	gateway := payment.GatewayConfig{
		APIURL:  "https://gateway.example/order.json",
		StoreID: "12345",
		AuthKey: "key",
	}

	// cod always resolves to the COD strategy, even with simulation on.
	p, err := payment.NewProcessor(models.PaymentMethodCOD, payment.Config{SimulateEnabled: true})
	assert.NoError(t, err)
	assert.IsType(t, &payment.CODProcessor{}, p)

	// card and upi use the simulator when the flag is set.
	p, err = payment.NewProcessor(models.PaymentMethodCard, payment.Config{SimulateEnabled: true})
	assert.NoError(t, err)
	assert.IsType(t, &payment.SimulatedProcessor{}, p)

	p, err = payment.NewProcessor(models.PaymentMethodUPI, payment.Config{SimulateEnabled: true})
	assert.NoError(t, err)
	assert.IsType(t, &payment.SimulatedProcessor{}, p)

	// Without the flag they go to the hosted gateway.
	p, err = payment.NewProcessor(models.PaymentMethodCard, payment.Config{Gateway: gateway})
	assert.NoError(t, err)
	assert.IsType(t, &payment.HostedGatewayProcessor{}, p)

	// Unknown methods are rejected outright.
	_, err = payment.NewProcessor(models.PaymentMethod("barter"), payment.Config{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported payment method")
}

func TestNewHostedGatewayProcessor_RequiresConfig(t *testing.T) {
	_, err := payment.NewHostedGatewayProcessor(payment.GatewayConfig{})
	assert.Error(t, err)

	_, err = payment.NewHostedGatewayProcessor(payment.GatewayConfig{APIURL: "https://gateway.example", StoreID: "1"})
	assert.Error(t, err)

	_, err = payment.NewHostedGatewayProcessor(payment.GatewayConfig{APIURL: "https://gateway.example", StoreID: "1", AuthKey: "k"})
	assert.NoError(t, err)
}

func TestHostedGatewayProcessor_Charge(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"session": map[string]string{
				"ref": "GW-REF-001",
				"url": "https://gateway.example/pay/GW-REF-001",
			},
		})
	}))
	defer server.Close()

	processor, err := payment.NewHostedGatewayProcessor(payment.GatewayConfig{
		APIURL:     server.URL,
		StoreID:    "12345",
		AuthKey:    "key",
		SuccessURL: "https://shop.example/payments/success",
		FailureURL: "https://shop.example/payments/failure",
		CancelURL:  "https://shop.example/payments/cancel",
	})
	assert.NoError(t, err)

	outcome, err := processor.Charge(55000, "INR")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, outcome.Status)
	assert.Equal(t, "GW-REF-001", outcome.Reference)
	assert.Equal(t, "https://gateway.example/pay/GW-REF-001", outcome.RedirectURL)

	// The create-session request carries the amount in minor units.
	order := captured["order"].(map[string]interface{})
	assert.Equal(t, float64(55000), order["amount"])
	assert.Equal(t, "INR", order["currency"])
	assert.Equal(t, "12345", captured["store"])
}

func TestHostedGatewayProcessor_Charge_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"code":    "31",
				"message": "invalid store credentials",
			},
		})
	}))
	defer server.Close()

	processor, err := payment.NewHostedGatewayProcessor(payment.GatewayConfig{
		APIURL: server.URL, StoreID: "12345", AuthKey: "bad-key",
	})
	assert.NoError(t, err)

	_, err = processor.Charge(1000, "INR")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid store credentials")
}

func TestHostedGatewayProcessor_Charge_BadResponses(t *testing.T) {
	// Non-200 status
	errorServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer errorServer.Close()

	processor, err := payment.NewHostedGatewayProcessor(payment.GatewayConfig{
		APIURL: errorServer.URL, StoreID: "12345", AuthKey: "key",
	})
	assert.NoError(t, err)
	_, err = processor.Charge(1000, "INR")
	assert.Error(t, err)

	// 200 with an empty session body
	emptyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"session": map[string]string{}})
	}))
	defer emptyServer.Close()

	processor, err = payment.NewHostedGatewayProcessor(payment.GatewayConfig{
		APIURL: emptyServer.URL, StoreID: "12345", AuthKey: "key",
	})
	assert.NoError(t, err)
	_, err = processor.Charge(1000, "INR")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty session")

	// Gateway unreachable
	processor, err = payment.NewHostedGatewayProcessor(payment.GatewayConfig{
		APIURL: "http://127.0.0.1:1/order.json", StoreID: "12345", AuthKey: "key",
	})
	assert.NoError(t, err)
	_, err = processor.Charge(1000, "INR")
	assert.Error(t, err)
}
