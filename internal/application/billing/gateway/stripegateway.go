package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

const (
	defaultAPIBaseURL = "https://api.stripe.com"
	defaultTimeout    = 15 * time.Second
)

// StripeGateway talks to the Stripe payment-intents REST API with
// form-encoded requests. Requests carry a bounded timeout; a timeout or
// transport error is reported as ErrGatewayFailure so renewal treats it as a
// failed charge.
type StripeGateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

type StripeConfig struct {
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
}

func NewStripeGateway(cfg StripeConfig, log logger.Interface) *StripeGateway {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &StripeGateway{
		secretKey:  cfg.SecretKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Error        *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")

	return g.postIntent(ctx, "/v1/payment_intents", form)
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty intent id", billing.ErrGatewayFailure)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/payment_intents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrGatewayFailure, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	return g.doIntentRequest(req)
}

func (g *StripeGateway) ChargeOffSession(ctx context.Context, instrumentRef string, amount int64, currency string) (*Intent, error) {
	if instrumentRef == "" {
		return nil, fmt.Errorf("%w: empty instrument reference", billing.ErrGatewayFailure)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("payment_method", instrumentRef)
	form.Set("confirm", "true")
	form.Set("off_session", "true")

	return g.postIntent(ctx, "/v1/payment_intents", form)
}

func (g *StripeGateway) postIntent(ctx context.Context, path string, form url.Values) (*Intent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrGatewayFailure, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return g.doIntentRequest(req)
}

func (g *StripeGateway) doIntentRequest(req *http.Request) (*Intent, error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warnw("charge gateway request failed", "error", err, "url", req.URL.Path)
		return nil, fmt.Errorf("%w: %v", billing.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", billing.ErrGatewayFailure, err)
	}

	var parsed intentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", billing.ErrGatewayFailure, err)
	}

	// Card declines come back with an HTTP error status and a structured
	// error body. A decline is still an answer from the gateway, so it maps
	// to a non-success intent status, not to ErrGatewayFailure.
	if parsed.Error != nil {
		g.logger.Infow("charge gateway declined request",
			"error_type", parsed.Error.Type,
			"message", parsed.Error.Message,
		)
		return &Intent{ID: parsed.ID, Status: "failed"}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", billing.ErrGatewayFailure, resp.StatusCode)
	}

	return &Intent{
		ID:           parsed.ID,
		ClientSecret: parsed.ClientSecret,
		Status:       parsed.Status,
		Amount:       parsed.Amount,
		Currency:     parsed.Currency,
	}, nil
}
