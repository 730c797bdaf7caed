package api

import (
	"context"
	"encoding/json"
	"net"
	"net/url"
	"sync"
	"testing"
	"time"

	"league-registration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

type capturedRequest struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    []byte
}

// newTestServer serves handler on an in-memory listener and returns a client
// dialing it.
func newTestServer(t *testing.T, handler fasthttp.RequestHandler) (*fasthttp.Client, *[]capturedRequest) {
	t.Helper()

	var mu sync.Mutex
	var captured []capturedRequest

	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		headers := map[string]string{}
		for _, k := range []string{"Authorization", "Content-Type", "Idempotency-Key"} {
			if v := ctx.Request.Header.Peek(k); len(v) > 0 {
				headers[k] = string(v)
			}
		}
		mu.Lock()
		captured = append(captured, capturedRequest{
			Method:  string(ctx.Method()),
			Path:    string(ctx.Path()),
			Headers: headers,
			Body:    append([]byte(nil), ctx.PostBody()...),
		})
		mu.Unlock()
		handler(ctx)
	}}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { ln.Close() })

	client := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) { return ln.Dial() },
	}
	return client, &captured
}

func jsonResponse(status int, body string) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(status)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(body)
	}
}

func TestStripeCreateCustomer(t *testing.T) {
	client, captured := newTestServer(t, jsonResponse(200, `{"id":"cus_123","email":"alex@example.com"}`))
	stripe := newStripeClient("http://stripe.test/", "sk_test_abc", client)

	id, err := stripe.CreateCustomer(context.Background(), CustomerParams{
		Email:          "alex@example.com",
		UserID:         "user-1",
		IdempotencyKey: "customer-create-user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "cus_123", id)

	require.Len(t, *captured, 1)
	req := (*captured)[0]
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/v1/customers", req.Path)
	assert.Equal(t, "Bearer sk_test_abc", req.Headers["Authorization"])
	assert.Equal(t, "customer-create-user-1", req.Headers["Idempotency-Key"])
	assert.Equal(t, "application/x-www-form-urlencoded", req.Headers["Content-Type"])

	form, err := url.ParseQuery(string(req.Body))
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", form.Get("email"))
	assert.Equal(t, "user-1", form.Get("metadata[userId]"))
}

func TestStripeCreatePaymentIntent(t *testing.T) {
	client, captured := newTestServer(t, jsonResponse(200,
		`{"id":"pi_1","client_secret":"pi_1_secret_x","amount":28249,"currency":"cad","status":"requires_payment_method"}`))
	stripe := newStripeClient("http://stripe.test", "sk_test_abc", client)

	intent, err := stripe.CreatePaymentIntent(context.Background(), PaymentIntentParams{
		Amount:     28249,
		Currency:   "cad",
		CustomerID: "cus_123",
		Metadata: map[string]string{
			"payment_id":  "7",
			"league_id":   "3",
			"team_id":     "",
			"league_name": "Tuesday Coed",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, &domain.PaymentIntent{
		ClientSecret: "pi_1_secret_x",
		IntentID:     "pi_1",
		Amount:       28249,
		Currency:     "cad",
	}, intent)

	req := (*captured)[0]
	assert.Equal(t, "/v1/payment_intents", req.Path)
	assert.Empty(t, req.Headers["Idempotency-Key"])

	form, err := url.ParseQuery(string(req.Body))
	require.NoError(t, err)
	assert.Equal(t, "28249", form.Get("amount"))
	assert.Equal(t, "cad", form.Get("currency"))
	assert.Equal(t, "cus_123", form.Get("customer"))
	assert.Equal(t, "true", form.Get("automatic_payment_methods[enabled]"))
	assert.Equal(t, "7", form.Get("metadata[payment_id]"))
	assert.Equal(t, "Tuesday Coed", form.Get("metadata[league_name]"))
	assert.Contains(t, form, "metadata[team_id]")
	assert.Equal(t, "", form.Get("metadata[team_id]"))
}

func TestStripeErrorResponse(t *testing.T) {
	client, _ := newTestServer(t, jsonResponse(402,
		`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	stripe := newStripeClient("http://stripe.test", "sk_test_abc", client)

	_, err := stripe.CreatePaymentIntent(context.Background(), PaymentIntentParams{Amount: 100, Currency: "cad"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 402, apiErr.StatusCode)
	assert.Equal(t, "Your card was declined.", apiErr.Message)
	assert.False(t, apiErr.Temporary())
}

func TestResendSend(t *testing.T) {
	client, captured := newTestServer(t, jsonResponse(200, `{"id":"email_1"}`))
	resend := newResendClient("http://resend.test", "re_key", "OFSL System <noreply@ofsl.ca>", client)

	id, err := resend.Send(context.Background(), Email{
		To:      []string{"jordan@example.com"},
		Subject: "Registration Confirmed",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "email_1", id)

	req := (*captured)[0]
	assert.Equal(t, "/emails", req.Path)
	assert.Equal(t, "Bearer re_key", req.Headers["Authorization"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "OFSL System <noreply@ofsl.ca>", body["from"])
	assert.Equal(t, []any{"jordan@example.com"}, body["to"])
	assert.Equal(t, "Registration Confirmed", body["subject"])
	assert.Equal(t, "<p>hi</p>", body["html"])
}

func TestResendErrorAndNoRecipients(t *testing.T) {
	client, captured := newTestServer(t, jsonResponse(503, `{"name":"internal_server_error","message":"try later"}`))
	resend := newResendClient("http://resend.test", "re_key", "from@example.com", client)

	_, err := resend.Send(context.Background(), Email{Subject: "x"})
	require.Error(t, err)
	assert.Empty(t, *captured)

	_, err = resend.Send(context.Background(), Email{To: []string{"a@example.com"}, Subject: "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "try later", apiErr.Message)
	assert.True(t, apiErr.Temporary())
}

func TestAdminNotifierTrigger(t *testing.T) {
	client, captured := newTestServer(t, jsonResponse(202, `{}`))
	admin := newAdminNotifier("http://admin.test/functions/v1/process-notification-queue", client)
	require.True(t, admin.Enabled())

	status, err := admin.Trigger(context.Background(), "session-token")
	require.NoError(t, err)
	assert.Equal(t, 202, status)

	req := (*captured)[0]
	assert.Equal(t, "/functions/v1/process-notification-queue", req.Path)
	assert.Equal(t, "Bearer session-token", req.Headers["Authorization"])

	assert.False(t, newAdminNotifier("", client).Enabled())
}

func TestRequestHonoursContext(t *testing.T) {
	client, captured := newTestServer(t, jsonResponse(200, `{}`))
	admin := newAdminNotifier("http://admin.test/hook", client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := admin.Trigger(ctx, "t")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *captured)

	ctx, cancel = context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = admin.Trigger(ctx, "t")
	require.NoError(t, err)
}
