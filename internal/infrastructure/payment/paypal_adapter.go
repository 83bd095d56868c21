// Package payment adapts the PayPal REST API (Orders v2 and webhook
// verification) to the finance gateway port.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/flowchartsman/retry"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	paypalTokenPath        = "/v1/oauth2/token"
	paypalOrdersPath       = "/v2/checkout/orders"
	paypalVerifyWebhookURL = "/v1/notifications/verify-webhook-signature"

	// tokens are refreshed this long before PayPal expires them
	tokenExpiryMargin = time.Minute
	maxResponseBody   = 1 << 20
)

// PayPalAdapter implements finance.PayPalGateway
type PayPalAdapter struct {
	cfg        config.PayPalConfig
	baseURL    string
	httpClient *http.Client
	retrier    *retry.Retrier
	logger     *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
	now         func() time.Time
}

// PayPalOption configures the adapter
type PayPalOption func(*PayPalAdapter)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) PayPalOption {
	return func(a *PayPalAdapter) {
		a.httpClient = c
	}
}

// WithRetryDelays overrides the backoff used between attempts
func WithRetryDelays(initial, max time.Duration) PayPalOption {
	return func(a *PayPalAdapter) {
		a.retrier = retry.NewRetrier(a.attempts(), initial, max)
	}
}

// NewPayPalAdapter creates the adapter
func NewPayPalAdapter(cfg config.PayPalConfig, logger *zap.Logger, opts ...PayPalOption) (*PayPalAdapter, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("paypal: client id and client secret are required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("paypal: base url is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	a := &PayPalAdapter{
		cfg:        cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
	a.retrier = retry.NewRetrier(a.attempts(), 200*time.Millisecond, 2*time.Second)

	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *PayPalAdapter) attempts() int {
	if a.cfg.MaxRetries < 1 {
		return 1
	}
	return a.cfg.MaxRetries
}

var _ finance.PayPalGateway = (*PayPalAdapter)(nil)

type orderAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnit struct {
	Amount      orderAmount `json:"amount"`
	CustomID    string      `json:"custom_id,omitempty"`
	Description string      `json:"description,omitempty"`
}

type applicationContext struct {
	BrandName          string `json:"brand_name,omitempty"`
	ShippingPreference string `json:"shipping_preference"`
}

type createOrderBody struct {
	Intent             string             `json:"intent"`
	PurchaseUnits      []purchaseUnit     `json:"purchase_units"`
	ApplicationContext applicationContext `json:"application_context"`
}

// CreateOrder creates a CAPTURE intent order for the full amount. The platform
// account receives the funds; the creator share is settled outside the order.
func (a *PayPalAdapter) CreateOrder(ctx context.Context, req finance.PayPalOrderRequest) (*finance.PayPalOrder, error) {
	if req.Amount <= 0 {
		return nil, finance.ErrInvalidAmount
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}

	body := createOrderBody{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			Amount: orderAmount{
				CurrencyCode: currency,
				Value:        finance.CentsToDollars(req.Amount).StringFixed(2),
			},
			CustomID:    CustomID(req.Metadata),
			Description: truncate(req.Description, 127),
		}},
		ApplicationContext: applicationContext{
			BrandName:          a.cfg.BrandName,
			ShippingPreference: "NO_SHIPPING",
		},
	}

	resp, err := a.callJSON(ctx, http.MethodPost, paypalOrdersPath, body, map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		a.logger.Error("Failed to create PayPal order", zap.Int64("amount", req.Amount), zap.Error(err))
		return nil, err
	}

	id := gjson.GetBytes(resp, "id").String()
	if id == "" {
		return nil, fmt.Errorf("%w: paypal order response has no id", finance.ErrGatewayInvalidResponse)
	}

	a.logger.Info("Created PayPal order", zap.String("order_id", id), zap.Int64("amount", req.Amount))
	return &finance.PayPalOrder{
		ID:         id,
		Status:     gjson.GetBytes(resp, "status").String(),
		ApproveURL: gjson.GetBytes(resp, `links.#(rel=="approve").href`).String(),
	}, nil
}

// callJSON performs an authenticated JSON request with retries
func (a *PayPalAdapter) callJSON(ctx context.Context, method, path string, payload any, headers map[string]string) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("paypal: failed to marshal request: %w", err)
	}

	var out []byte
	err = a.retrier.RunContext(ctx, func(ctx context.Context) error {
		token, err := a.token(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, bytes.NewReader(raw))
		if err != nil {
			return retry.Stop(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		body, status, err := a.do(req)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			a.invalidateToken()
		}
		if err := classifyStatus(status, body); err != nil {
			return err
		}
		out = body
		return nil
	})
	if err != nil {
		return nil, unwrapStop(err)
	}
	return out, nil
}

// token returns a cached OAuth2 access token, fetching a new one when needed
func (a *PayPalAdapter) token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.accessToken != "" && a.now().Before(a.tokenExpiry) {
		return a.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+paypalTokenPath,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", retry.Stop(err)
	}
	req.SetBasicAuth(a.cfg.ClientID, a.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, status, err := a.do(req)
	if err != nil {
		return "", err
	}
	if err := classifyStatus(status, body); err != nil {
		return "", err
	}

	token := gjson.GetBytes(body, "access_token").String()
	if token == "" {
		return "", retry.Stop(fmt.Errorf("%w: paypal token response has no access_token", finance.ErrGatewayInvalidResponse))
	}
	ttl := time.Duration(gjson.GetBytes(body, "expires_in").Int()) * time.Second

	a.accessToken = token
	a.tokenExpiry = a.now().Add(ttl - tokenExpiryMargin)
	return token, nil
}

func (a *PayPalAdapter) invalidateToken() {
	a.mu.Lock()
	a.accessToken = ""
	a.mu.Unlock()
}

func (a *PayPalAdapter) do(req *http.Request) ([]byte, int, error) {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: paypal %s %s: %v", finance.ErrGatewayRequestFailed, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: paypal read body: %v", finance.ErrGatewayRequestFailed, err)
	}
	return body, resp.StatusCode, nil
}

// classifyStatus maps an HTTP status to a retryable or terminal error.
// 401 is retried once the cached token has been dropped.
func classifyStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	err := fmt.Errorf("%w: paypal status %d: %s %s", finance.ErrGatewayRequestFailed, status,
		gjson.GetBytes(body, "name").String(), gjson.GetBytes(body, "message").String())
	if status >= 500 || status == http.StatusTooManyRequests || status == http.StatusUnauthorized {
		return err
	}
	return retry.Stop(err)
}

// unwrapStop strips the retry library's stop marker so callers can match
// the gateway sentinel errors.
func unwrapStop(err error) error {
	for _, target := range []error{finance.ErrGatewayRequestFailed, finance.ErrGatewayInvalidResponse, finance.ErrGatewayInvalidCallback} {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", finance.ErrGatewayRequestFailed, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
