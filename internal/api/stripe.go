package api

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"league-registration/internal/config"
	"league-registration/internal/domain"

	"github.com/valyala/fasthttp"
)

// StripeClient talks to the Stripe REST API with form-encoded requests.
type StripeClient struct {
	baseURL   string
	secretKey string
	client    *fasthttp.Client
}

func NewStripeClient(cfg *config.Config) *StripeClient {
	return newStripeClient(cfg.StripeAPIBaseURL, cfg.StripeSecretKey, newHTTPClient())
}

func newStripeClient(baseURL, secretKey string, client *fasthttp.Client) *StripeClient {
	return &StripeClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		client:    client,
	}
}

type CustomerParams struct {
	Email  string
	UserID string
	// IdempotencyKey makes concurrent creations for one user return the same
	// customer.
	IdempotencyKey string
}

type PaymentIntentParams struct {
	Amount     domain.Money
	Currency   string
	CustomerID string
	Metadata   map[string]string
}

type stripeCustomer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type stripePaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// CreateCustomer returns the new customer's id.
func (c *StripeClient) CreateCustomer(ctx context.Context, p CustomerParams) (string, error) {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	args.Add("email", p.Email)
	addMetadata(args, map[string]string{"userId": p.UserID})

	headers := map[string]string{}
	if p.IdempotencyKey != "" {
		headers["Idempotency-Key"] = p.IdempotencyKey
	}

	customer, err := doRequest[stripeCustomer](ctx, c.client, c.request("/v1/customers", args, headers))
	if err != nil {
		return "", err
	}
	return customer.ID, nil
}

func (c *StripeClient) CreatePaymentIntent(ctx context.Context, p PaymentIntentParams) (*domain.PaymentIntent, error) {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	args.Add("amount", strconv.FormatInt(int64(p.Amount), 10))
	args.Add("currency", p.Currency)
	args.Add("customer", p.CustomerID)
	args.Add("automatic_payment_methods[enabled]", "true")
	addMetadata(args, p.Metadata)

	intent, err := doRequest[stripePaymentIntent](ctx, c.client, c.request("/v1/payment_intents", args, nil))
	if err != nil {
		return nil, err
	}
	return &domain.PaymentIntent{
		ClientSecret: intent.ClientSecret,
		IntentID:     intent.ID,
		Amount:       domain.Money(intent.Amount),
		Currency:     intent.Currency,
	}, nil
}

func (c *StripeClient) request(path string, args *fasthttp.Args, headers map[string]string) request {
	if headers == nil {
		headers = map[string]string{}
	}
	headers["Authorization"] = "Bearer " + c.secretKey

	return request{
		service:     "stripe",
		method:      fasthttp.MethodPost,
		url:         c.baseURL + path,
		contentType: "application/x-www-form-urlencoded",
		body:        append([]byte(nil), args.QueryString()...),
		headers:     headers,
		decodeError: decodeStripeError,
	}
}

// Keys are written in sorted order so request bodies are deterministic.
func addMetadata(args *fasthttp.Args, metadata map[string]string) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args.Add("metadata["+k+"]", metadata[k])
	}
}

func decodeStripeError(body []byte) string {
	var payload struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return string(body)
	}
	return payload.Error.Message
}
