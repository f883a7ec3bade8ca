package vnpay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestay/config"
	"homestay/infras/metrics"
	"homestay/infras/vnpay"
	"homestay/shared/timezone"
)

const secret = "SECRETKEY"

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Payment.VNPay.TmnCode = "HOMESTAY"
	cfg.Payment.VNPay.HashSecret = secret
	cfg.Payment.VNPay.PayURL = "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"
	cfg.Payment.VNPay.Version = "2.1.0"
	cfg.Payment.VNPay.Locale = "vn"
	cfg.Payment.VNPay.CurrCode = "VND"
	cfg.Payment.VNPay.ReturnURL = "https://homestay.example/v1/payments/vnpay/return/checkout"
	cfg.Payment.VNPay.ExpireMinutes = 15
	cfg.Payment.VNPay.TimeoutSeconds = 1
	cfg.Payment.VNPay.QueryRPS = 100

	return cfg
}

func newClient(cfg *config.Config) vnpay.Client {
	clock := timezone.NewFixed(time.Date(2025, 1, 10, 3, 0, 0, 0, time.UTC))

	return vnpay.New(cfg, clock, metrics.New())
}

func callback(ref, code string) url.Values {
	params := url.Values{}
	params.Set("vnp_TmnCode", "HOMESTAY")
	params.Set("vnp_Amount", "100000000")
	params.Set("vnp_TxnRef", ref)
	params.Set("vnp_ResponseCode", code)
	params.Set("vnp_TransactionStatus", code)
	params.Set("vnp_TransactionNo", "14422574")
	params.Set("vnp_PayDate", "20250110100500")
	params.Set("vnp_OrderInfo", "Homestay booking 42")
	params.Set("vnp_BankCode", "NCB")
	params.Set("vnp_SecureHash", vnpay.Sign(secret, params))

	return params
}

func TestCreatePaymentURL(t *testing.T) {
	client := newClient(newConfig())

	raw, err := client.CreatePaymentURL(vnpay.PaymentRequest{
		OrderRef:    "42_1736478000000000000",
		Amount:      1000000,
		Description: "Homestay booking 42",
		OrderType:   "checkout",
		ClientIP:    "10.0.0.1",
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "sandbox.vnpayment.vn", u.Host)
	assert.Equal(t, "100000000", q.Get("vnp_Amount"))
	assert.Equal(t, "42_1736478000000000000", q.Get("vnp_TxnRef"))
	assert.Equal(t, "20250110100000", q.Get("vnp_CreateDate"))
	assert.Equal(t, "20250110101500", q.Get("vnp_ExpireDate"))
	assert.Equal(t, "https://homestay.example/v1/payments/vnpay/return/checkout", q.Get("vnp_ReturnUrl"))
	assert.Equal(t, vnpay.Sign(secret, q), q.Get("vnp_SecureHash"))
}

func TestCreatePaymentURLRejectsBadInput(t *testing.T) {
	client := newClient(newConfig())

	_, err := client.CreatePaymentURL(vnpay.PaymentRequest{OrderRef: "1_1", Amount: 0})
	assert.Error(t, err)

	_, err = client.CreatePaymentURL(vnpay.PaymentRequest{Amount: 10})
	assert.Error(t, err)
}

func TestVerifyCallback(t *testing.T) {
	client := newClient(newConfig())

	cb, err := client.VerifyCallback(context.Background(), callback("42_1736478000000000000", "00"))
	require.NoError(t, err)

	assert.True(t, cb.Success())
	assert.Equal(t, "42_1736478000000000000", cb.OrderRef)
	assert.Equal(t, int64(1000000), cb.Amount)
	assert.Equal(t, "00", cb.ResponseCode)

	cb, err = client.VerifyCallback(context.Background(), callback("42_1", "24"))
	require.NoError(t, err)
	assert.False(t, cb.Success())
	assert.Equal(t, "24", cb.ResponseCode)
}

func TestVerifyCallbackRejectsTampering(t *testing.T) {
	client := newClient(newConfig())

	tests := []struct {
		name   string
		mutate func(url.Values)
	}{
		{name: "amount changed", mutate: func(v url.Values) { v.Set("vnp_Amount", "100") }},
		{name: "reference changed", mutate: func(v url.Values) { v.Set("vnp_TxnRef", "43_1") }},
		{name: "signature missing", mutate: func(v url.Values) { v.Del("vnp_SecureHash") }},
		{name: "signature garbage", mutate: func(v url.Values) { v.Set("vnp_SecureHash", "zz") }},
		{name: "field added", mutate: func(v url.Values) { v.Set("vnp_BankTranNo", "X") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := callback("42_1", "00")
			tt.mutate(params)

			_, err := client.VerifyCallback(context.Background(), params)
			assert.ErrorIs(t, err, vnpay.ErrVerificationFailed)
		})
	}
}

func TestVerifyCallbackRejectsOtherMerchant(t *testing.T) {
	client := newClient(newConfig())

	params := callback("42_1", "00")
	params.Set("vnp_TmnCode", "OTHER")
	params.Set("vnp_SecureHash", vnpay.Sign(secret, params))

	_, err := client.VerifyCallback(context.Background(), params)
	assert.ErrorIs(t, err, vnpay.ErrVerificationFailed)
}

func TestVerifyCallbackConfirmsWithProvider(t *testing.T) {
	var got map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"vnp_ResponseCode":      "00",
			"vnp_TxnRef":            got["vnp_TxnRef"],
			"vnp_TransactionStatus": "00",
		})
	}))
	defer srv.Close()

	cfg := newConfig()
	cfg.Payment.VNPay.QueryURL = srv.URL

	cb, err := newClient(cfg).VerifyCallback(context.Background(), callback("42_1", "00"))
	require.NoError(t, err)
	assert.True(t, cb.Success())
	assert.Equal(t, "querydr", got["vnp_Command"])
	assert.Equal(t, "42_1", got["vnp_TxnRef"])
	assert.NotEmpty(t, got["vnp_SecureHash"])
}

func TestVerifyCallbackFailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "timeout",
			handler: func(_ http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(3 * time.Second):
				}
			},
		},
		{
			name: "provider says unpaid",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"vnp_ResponseCode": "00", "vnp_TransactionStatus": "01"})
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			cfg := newConfig()
			cfg.Payment.VNPay.QueryURL = srv.URL

			_, err := newClient(cfg).VerifyCallback(context.Background(), callback("42_1", "00"))
			assert.ErrorIs(t, err, vnpay.ErrVerificationFailed)
		})
	}
}
