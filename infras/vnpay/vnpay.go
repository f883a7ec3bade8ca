// Package vnpay adapts the VNPay redirect gateway: signing outbound payment URLs and
// verifying the return and IPN callbacks.
package vnpay

//go:generate go run go.uber.org/mock/mockgen -source=./vnpay.go -destination=./mocks/vnpay_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"homestay/config"
	"homestay/infras/metrics"
	"homestay/shared/timezone"
)

const (
	commandPay        = "pay"
	dateLayout        = "20060102150405"
	minorUnits        = 100
	responseCodeOK    = "00"
	defaultQueryRPS   = 5
	defaultTimeoutSec = 10
)

// VNPay stamps dates in Vietnam local time regardless of where the server runs.
var gatewayZone = time.FixedZone("ICT", 7*60*60)

// ErrVerificationFailed is returned for any callback that cannot be trusted: a bad or
// missing signature, unparsable fields, or a status query that did not succeed in time.
var ErrVerificationFailed = errors.New("vnpay: verification failed")

type PaymentRequest struct {
	OrderRef    string
	Amount      int64
	Description string
	OrderType   string
	ReturnURL   string
	ClientIP    string
}

// Callback is the verified content of a return or IPN request.
type Callback struct {
	OrderRef          string
	Amount            int64
	ResponseCode      string
	TransactionStatus string
	TransactionNo     string
	BankCode          string
	PayDate           string
	OrderInfo         string
}

// Success reports whether the gateway charged the guest.
func (c Callback) Success() bool {
	if c.ResponseCode != responseCodeOK {
		return false
	}

	return c.TransactionStatus == "" || c.TransactionStatus == responseCodeOK
}

type Client interface {
	CreatePaymentURL(req PaymentRequest) (string, error)
	VerifyCallback(ctx context.Context, params url.Values) (Callback, error)
}

type clientImpl struct {
	tmnCode    string
	hashSecret string
	payURL     string
	queryURL   string
	version    string
	locale     string
	currCode   string
	returnURL  string
	expire     time.Duration
	timeout    time.Duration

	clock   timezone.Clock
	metrics *metrics.Metrics
	hc      *http.Client
	rl      *rate.Limiter
}

func New(cfg *config.Config, clock timezone.Clock, m *metrics.Metrics) Client {
	vnp := cfg.Payment.VNPay

	rps := vnp.QueryRPS
	if rps <= 0 {
		rps = defaultQueryRPS
	}

	timeout := time.Duration(vnp.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeoutSec * time.Second
	}

	return &clientImpl{
		tmnCode:    vnp.TmnCode,
		hashSecret: vnp.HashSecret,
		payURL:     vnp.PayURL,
		queryURL:   vnp.QueryURL,
		version:    vnp.Version,
		locale:     vnp.Locale,
		currCode:   vnp.CurrCode,
		returnURL:  vnp.ReturnURL,
		expire:     time.Duration(vnp.ExpireMinutes) * time.Minute,
		timeout:    timeout,
		clock:      clock,
		metrics:    m,
		hc:         &http.Client{Timeout: timeout},
		rl:         rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// CreatePaymentURL builds the signed redirect. Amount is in major VND units.
func (c *clientImpl) CreatePaymentURL(req PaymentRequest) (string, error) {
	if req.Amount <= 0 {
		return "", fmt.Errorf("vnpay: amount must be positive, got %d", req.Amount)
	}

	if req.OrderRef == "" {
		return "", errors.New("vnpay: order reference is required")
	}

	base, err := url.Parse(c.payURL)
	if err != nil {
		return "", fmt.Errorf("vnpay: parse pay url: %w", err)
	}

	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = c.returnURL
	}

	now := c.clock.Now().In(gatewayZone)

	params := url.Values{}
	params.Set("vnp_Version", c.version)
	params.Set("vnp_Command", commandPay)
	params.Set("vnp_TmnCode", c.tmnCode)
	params.Set("vnp_Amount", strconv.FormatInt(req.Amount*minorUnits, 10))
	params.Set("vnp_CurrCode", c.currCode)
	params.Set("vnp_TxnRef", req.OrderRef)
	params.Set("vnp_OrderInfo", req.Description)
	params.Set("vnp_OrderType", req.OrderType)
	params.Set("vnp_Locale", c.locale)
	params.Set("vnp_ReturnUrl", returnURL)
	params.Set("vnp_IpAddr", req.ClientIP)
	params.Set("vnp_CreateDate", now.Format(dateLayout))

	if c.expire > 0 {
		params.Set("vnp_ExpireDate", now.Add(c.expire).Format(dateLayout))
	}

	query := canonical(params)
	base.RawQuery = query + "&" + paramSecureHash + "=" + sign(c.hashSecret, query)

	return base.String(), nil
}

// VerifyCallback checks the signature and extracts the gateway's verdict. When a query
// endpoint is configured the transaction is also confirmed with the provider.
func (c *clientImpl) VerifyCallback(ctx context.Context, params url.Values) (Callback, error) {
	signature := params.Get(paramSecureHash)
	if signature == "" || !verify(c.hashSecret, canonical(params), signature) {
		return Callback{}, ErrVerificationFailed
	}

	if tmn := params.Get("vnp_TmnCode"); tmn != "" && tmn != c.tmnCode {
		return Callback{}, ErrVerificationFailed
	}

	amount, err := strconv.ParseInt(params.Get("vnp_Amount"), 10, 64)
	if err != nil || amount < 0 {
		return Callback{}, ErrVerificationFailed
	}

	cb := Callback{
		OrderRef:          params.Get("vnp_TxnRef"),
		Amount:            amount / minorUnits,
		ResponseCode:      params.Get("vnp_ResponseCode"),
		TransactionStatus: params.Get("vnp_TransactionStatus"),
		TransactionNo:     params.Get("vnp_TransactionNo"),
		BankCode:          params.Get("vnp_BankCode"),
		PayDate:           params.Get("vnp_PayDate"),
		OrderInfo:         params.Get("vnp_OrderInfo"),
	}

	if c.queryURL == "" || !cb.Success() {
		return cb, nil
	}

	if err := c.confirm(ctx, cb); err != nil {
		return Callback{}, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	return cb, nil
}
