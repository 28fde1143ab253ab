// Package payout talks to the bank-transfer payout gateway. Requests and
// return callbacks are signed like the payment gateway's.
package payout

//go:generate mockgen -source=payout.go -destination=mock_payout.go -package=payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rental-marketplace-be/pkg/clients"
	"rental-marketplace-be/pkg/gateway/signer"
)

const (
	ParamSecureHash = "secure_hash"
	dateLayout      = "20060102150405"
)

var (
	ErrInvalidSignature = errors.New("payout: invalid signature")
	ErrMissingReference = errors.New("payout: missing txn_ref")
	ErrInvalidAmount    = errors.New("payout: invalid amount")
	ErrRejected         = errors.New("payout: request rejected")
	ErrUnavailable      = errors.New("payout: gateway unavailable")
)

type Config struct {
	BaseURL    string
	MerchantID string
	HashSecret string
	ReturnURL  string
}

type Gateway interface {
	CreatePayout(ctx context.Context, req Request) (*Result, error)
	VerifyReturn(params url.Values) (*ReturnResult, error)
}

type Request struct {
	TxnRef        string
	Amount        int64
	BankCode      string
	AccountNumber string
	AccountHolder string
	Description   string
}

type Result struct {
	Reference string
	Code      string
	Message   string
}

type ReturnResult struct {
	TxnRef       string
	Reference    string
	Amount       int64
	ResponseCode string
	Message      string
}

func (r *ReturnResult) Success() bool {
	return r.ResponseCode == CodeSuccess
}

type Client struct {
	cfg  Config
	http clients.HTTPClientI
	now  func() time.Time
}

func NewClient(cfg Config, httpClient clients.HTTPClientI) *Client {
	return &Client{cfg: cfg, http: httpClient, now: time.Now}
}

type createResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Reference string `json:"payout_reference"`
}

func (c *Client) CreatePayout(ctx context.Context, req Request) (*Result, error) {
	if req.TxnRef == "" {
		return nil, ErrMissingReference
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	params := url.Values{}
	params.Set("merchant_id", c.cfg.MerchantID)
	params.Set("txn_ref", req.TxnRef)
	params.Set("amount", strconv.FormatInt(req.Amount, 10))
	params.Set("bank_code", req.BankCode)
	params.Set("account_number", req.AccountNumber)
	params.Set("account_name", req.AccountHolder)
	params.Set("description", req.Description)
	params.Set("return_url", c.cfg.ReturnURL)
	params.Set("create_date", c.now().Format(dateLayout))
	params.Set(ParamSecureHash, signer.Sign(params, c.cfg.HashSecret))

	headers := http.Header{"Content-Type": []string{"application/x-www-form-urlencoded"}}
	status, body, err := c.http.Post(ctx, c.cfg.BaseURL+"/payout/create", headers, []byte(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if status >= 500 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}

	var resp createResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		if status >= 400 {
			return nil, fmt.Errorf("%w: status %d", ErrRejected, status)
		}
		return nil, fmt.Errorf("payout: decode response (status %d): %w", status, err)
	}
	if resp.Code != CodeSuccess {
		return nil, fmt.Errorf("%w: %s %s", ErrRejected, resp.Code, ResponseMessage(resp.Code))
	}
	return &Result{Reference: resp.Reference, Code: resp.Code, Message: resp.Message}, nil
}

func (c *Client) VerifyReturn(params url.Values) (*ReturnResult, error) {
	rest, signature := signer.Strip(params, ParamSecureHash)
	if !signer.Verify(rest, c.cfg.HashSecret, signature) {
		return nil, ErrInvalidSignature
	}
	txnRef := rest.Get("txn_ref")
	if txnRef == "" {
		return nil, ErrMissingReference
	}
	amount, err := strconv.ParseInt(rest.Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		return nil, ErrInvalidAmount
	}
	code := rest.Get("response_code")
	return &ReturnResult{
		TxnRef:       txnRef,
		Reference:    rest.Get("payout_reference"),
		Amount:       amount,
		ResponseCode: code,
		Message:      ResponseMessage(code),
	}, nil
}

// SignParams returns params with a valid secure_hash appended.
func (c *Client) SignParams(params url.Values) url.Values {
	out := url.Values{}
	for key, values := range params {
		out[key] = append([]string(nil), values...)
	}
	out.Set(ParamSecureHash, signer.Sign(params, c.cfg.HashSecret))
	return out
}
