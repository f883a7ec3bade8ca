package vnpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"homestay/shared/constant"
)

const (
	commandQuery    = "querydr"
	serviceName     = "vnpay"
	endpointQueryDR = "querydr"
)

type queryRequest struct {
	RequestID       string `json:"vnp_RequestId"`
	Version         string `json:"vnp_Version"`
	Command         string `json:"vnp_Command"`
	TmnCode         string `json:"vnp_TmnCode"`
	TxnRef          string `json:"vnp_TxnRef"`
	OrderInfo       string `json:"vnp_OrderInfo"`
	TransactionNo   string `json:"vnp_TransactionNo,omitempty"`
	TransactionDate string `json:"vnp_TransactionDate"`
	CreateDate      string `json:"vnp_CreateDate"`
	IPAddr          string `json:"vnp_IpAddr"`
	SecureHash      string `json:"vnp_SecureHash"`
}

type queryResponse struct {
	ResponseCode      string `json:"vnp_ResponseCode"`
	Message           string `json:"vnp_Message"`
	TxnRef            string `json:"vnp_TxnRef"`
	Amount            string `json:"vnp_Amount"`
	TransactionStatus string `json:"vnp_TransactionStatus"`
}

// confirm asks the provider whether the transaction really settled. It is rate limited and
// bounded by the client timeout; every failure is reported so the caller can fail closed.
func (c *clientImpl) confirm(ctx context.Context, cb Callback) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.rl.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	now := c.clock.Now().In(gatewayZone).Format(dateLayout)

	body := queryRequest{
		RequestID:       strings.ReplaceAll(uuid.NewString(), "-", ""),
		Version:         c.version,
		Command:         commandQuery,
		TmnCode:         c.tmnCode,
		TxnRef:          cb.OrderRef,
		OrderInfo:       "query " + cb.OrderRef,
		TransactionNo:   cb.TransactionNo,
		TransactionDate: cb.PayDate,
		CreateDate:      now,
		IPAddr:          "127.0.0.1",
	}
	body.SecureHash = sign(c.hashSecret, strings.Join([]string{
		body.RequestID, body.Version, body.Command, body.TmnCode, body.TxnRef,
		body.TransactionDate, body.CreateDate, body.IPAddr, body.OrderInfo,
	}, "|"))

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.queryURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	start := time.Now()

	resp, err := c.hc.Do(req)
	if err != nil {
		c.metrics.ObserveExternal(serviceName, endpointQueryDR, 0, time.Since(start))
		log.Warn().Err(err).Str("order_reference", cb.OrderRef).Msg("VNPay transaction query failed")

		return fmt.Errorf("query transaction: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveExternal(serviceName, endpointQueryDR, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("query transaction: unexpected status %d", resp.StatusCode)
	}

	var out queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode query response: %w", err)
	}

	if out.ResponseCode != responseCodeOK || out.TransactionStatus != responseCodeOK {
		return fmt.Errorf("transaction not settled: response %s status %s", out.ResponseCode, out.TransactionStatus)
	}

	if out.TxnRef != "" && out.TxnRef != cb.OrderRef {
		return fmt.Errorf("query answered for %s, expected %s", out.TxnRef, cb.OrderRef)
	}

	return nil
}
