// Package payment holds the checkout payment strategies. Every strategy
// resolves to exactly one Outcome (pending or paid, plus an optional gateway
// reference) or an error; an error always stops checkout before any store
// mutation happens.
package payment

import (
	"fmt"
	"time"

	"campusbazaar/internal/models"

	"github.com/google/uuid"
)

// Outcome is the single result every payment strategy produces.
type Outcome struct {
	Status models.PaymentStatus
	// Reference is the opaque id the gateway assigned to this payment.
	// Empty for cash on delivery.
	Reference string
	// RedirectURL is where the shopper completes a hosted-gateway payment.
	// Empty for cod and simulated payments.
	RedirectURL string
}

// Processor charges the given amount, expressed in minor currency units
// (paise for INR).
type Processor interface {
	Charge(amountMinor int64, currency string) (Outcome, error)
}

// Config selects and configures the strategies.
type Config struct {
	Gateway GatewayConfig
	// SimulateEnabled gates the simulated processor. It exists to bypass the
	// real gateway during development and must never be set in production.
	SimulateEnabled bool
	SimulateDelay   time.Duration
}

// NewProcessor returns the strategy for the given payment method.
func NewProcessor(method models.PaymentMethod, cfg Config) (Processor, error) {
	switch method {
	case models.PaymentMethodCOD:
		return &CODProcessor{}, nil
	case models.PaymentMethodCard, models.PaymentMethodUPI:
		if cfg.SimulateEnabled {
			return &SimulatedProcessor{Delay: cfg.SimulateDelay}, nil
		}
		return NewHostedGatewayProcessor(cfg.Gateway)
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", method)
	}
}

// CODProcessor is the cash-on-delivery strategy: payment stays pending until
// the courier collects it. No external call is made.
type CODProcessor struct{}

// Charge reports a pending payment with no reference.
func (p *CODProcessor) Charge(amountMinor int64, currency string) (Outcome, error) {
	return Outcome{Status: models.PaymentStatusPending}, nil
}

// SimulatedProcessor approves every charge after a fixed delay. Development
// and test use only; reachable solely through Config.SimulateEnabled.
type SimulatedProcessor struct {
	Delay time.Duration
}

// Charge waits the configured delay and reports a paid outcome with a
// placeholder reference.
func (p *SimulatedProcessor) Charge(amountMinor int64, currency string) (Outcome, error) {
	time.Sleep(p.Delay)
	return Outcome{
		Status:    models.PaymentStatusPaid,
		Reference: "SIM-" + uuid.New().String(),
	}, nil
}
