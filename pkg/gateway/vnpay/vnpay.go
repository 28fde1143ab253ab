// Package vnpay builds signed redirect URLs for the VNPay hosted payment page
// and verifies the parameters it sends back on return and IPN.
package vnpay

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"rental-marketplace-be/pkg/gateway/signer"
)

const (
	Version        = "2.1.0"
	CommandPay     = "pay"
	CurrencyVND    = "VND"
	OrderTypeOther = "other"
	DefaultLocale  = "vn"

	ParamSecureHash     = "vnp_SecureHash"
	ParamSecureHashType = "vnp_SecureHashType"

	dateLayout = "20060102150405"

	// Amounts travel scaled by 100.
	amountScale = 100
)

var (
	ErrInvalidSignature = errors.New("vnpay: invalid signature")
	ErrMissingTxnRef    = errors.New("vnpay: missing vnp_TxnRef")
	ErrInvalidAmount    = errors.New("vnpay: invalid vnp_Amount")
)

// gmt7 is the gateway's clock for vnp_CreateDate and vnp_ExpireDate.
var gmt7 = time.FixedZone("GMT+7", 7*60*60)

type Config struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

type Client struct {
	cfg Config
	now func() time.Time
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, now: time.Now}
}

type PaymentRequest struct {
	TxnRef    string
	Amount    int64
	OrderInfo string
	IPAddr    string
	Locale    string
	ExpireIn  time.Duration
}

func (c *Client) BuildPaymentURL(req PaymentRequest) (string, error) {
	if req.TxnRef == "" {
		return "", ErrMissingTxnRef
	}
	if req.Amount <= 0 {
		return "", ErrInvalidAmount
	}
	locale := req.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	expireIn := req.ExpireIn
	if expireIn <= 0 {
		expireIn = 15 * time.Minute
	}
	ipAddr := req.IPAddr
	if ipAddr == "" {
		ipAddr = "127.0.0.1"
	}

	now := c.now().In(gmt7)
	params := url.Values{}
	params.Set("vnp_Version", Version)
	params.Set("vnp_Command", CommandPay)
	params.Set("vnp_TmnCode", c.cfg.TmnCode)
	params.Set("vnp_Amount", strconv.FormatInt(req.Amount*amountScale, 10))
	params.Set("vnp_CurrCode", CurrencyVND)
	params.Set("vnp_TxnRef", req.TxnRef)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", OrderTypeOther)
	params.Set("vnp_Locale", locale)
	params.Set("vnp_ReturnUrl", c.cfg.ReturnURL)
	params.Set("vnp_IpAddr", ipAddr)
	params.Set("vnp_CreateDate", now.Format(dateLayout))
	params.Set("vnp_ExpireDate", now.Add(expireIn).Format(dateLayout))

	query := signer.Canonical(params)
	signature := signer.Sign(params, c.cfg.HashSecret)
	return fmt.Sprintf("%s?%s&%s=%s", c.cfg.PayURL, query, ParamSecureHash, signature), nil
}

type ReturnResult struct {
	TxnRef            string
	Amount            int64 // unscaled VND
	ResponseCode      string
	TransactionStatus string
	TransactionNo     string
	BankCode          string
	PayDate           string
	Raw               map[string]string
}

// Success reports a paid transaction. vnp_TransactionStatus is absent on some
// return URLs, in which case the response code alone decides.
func (r *ReturnResult) Success() bool {
	return r.ResponseCode == "00" && (r.TransactionStatus == "" || r.TransactionStatus == "00")
}

// VerifyReturn checks the signature before reading anything else from params.
func (c *Client) VerifyReturn(params url.Values) (*ReturnResult, error) {
	rest, signature := signer.Strip(params, ParamSecureHash, ParamSecureHashType)
	if !signer.Verify(rest, c.cfg.HashSecret, signature) {
		return nil, ErrInvalidSignature
	}

	txnRef := rest.Get("vnp_TxnRef")
	if txnRef == "" {
		return nil, ErrMissingTxnRef
	}
	scaled, err := strconv.ParseInt(rest.Get("vnp_Amount"), 10, 64)
	if err != nil || scaled < 0 || scaled%amountScale != 0 {
		return nil, ErrInvalidAmount
	}

	raw := make(map[string]string, len(params))
	for key := range params {
		raw[key] = params.Get(key)
	}

	return &ReturnResult{
		TxnRef:            txnRef,
		Amount:            scaled / amountScale,
		ResponseCode:      rest.Get("vnp_ResponseCode"),
		TransactionStatus: rest.Get("vnp_TransactionStatus"),
		TransactionNo:     rest.Get("vnp_TransactionNo"),
		BankCode:          rest.Get("vnp_BankCode"),
		PayDate:           rest.Get("vnp_PayDate"),
		Raw:               raw,
	}, nil
}

// SignParams is used by tests and tooling to produce a callback as the
// gateway would.
func (c *Client) SignParams(params url.Values) url.Values {
	out := url.Values{}
	for key, values := range params {
		out[key] = append([]string(nil), values...)
	}
	out.Set(ParamSecureHash, signer.Sign(params, c.cfg.HashSecret))
	return out
}
