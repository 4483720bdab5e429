// Package gateway abstracts the external charge-authorization service. The
// billing core only ever sees opaque intent IDs and instrument references;
// card data lives at the gateway.
package gateway

import "context"

// IntentStatusSucceeded is the terminal-success status reported by the gateway.
const IntentStatusSucceeded = "succeeded"

// Intent is a gateway-side charge record.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
}

type ChargeGateway interface {
	// CreateIntent opens a charge intent for the client to confirm.
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
	// RetrieveIntent fetches the current state of an intent.
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
	// ChargeOffSession creates and synchronously confirms a charge against a
	// stored instrument, without the cardholder present.
	ChargeOffSession(ctx context.Context, instrumentRef string, amount int64, currency string) (*Intent, error)
}
