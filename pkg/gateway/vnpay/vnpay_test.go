package vnpay

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	c := NewClient(Config{
		TmnCode:    "TESTTMN",
		HashSecret: "SECRETKEY",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:5173/payments/return",
	})
	c.now = func() time.Time { return time.Date(2025, 8, 30, 3, 0, 0, 0, time.UTC) }
	return c
}

func TestBuildPaymentURL(t *testing.T) {
	c := newTestClient()

	raw, err := c.BuildPaymentURL(PaymentRequest{
		TxnRef:    "TXN123",
		Amount:    3000000,
		OrderInfo: "Deposit",
		IPAddr:    "10.0.0.1",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?"))

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	q := parsed.Query()

	assert.Equal(t, "300000000", q.Get("vnp_Amount"))
	assert.Equal(t, "TXN123", q.Get("vnp_TxnRef"))
	assert.Equal(t, "20250830100000", q.Get("vnp_CreateDate"), "create date is GMT+7")
	assert.Equal(t, "20250830101500", q.Get("vnp_ExpireDate"))
	assert.NotEmpty(t, q.Get(ParamSecureHash))

	// The URL we hand out must verify as if the gateway echoed it back.
	result, err := c.VerifyReturn(q)
	require.NoError(t, err)
	assert.Equal(t, int64(3000000), result.Amount)
}

func TestBuildPaymentURL_Validation(t *testing.T) {
	c := newTestClient()

	_, err := c.BuildPaymentURL(PaymentRequest{Amount: 10})
	assert.ErrorIs(t, err, ErrMissingTxnRef)

	_, err = c.BuildPaymentURL(PaymentRequest{TxnRef: "X", Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func callback(amount string, code string) url.Values {
	v := url.Values{}
	v.Set("vnp_TmnCode", "TESTTMN")
	v.Set("vnp_TxnRef", "TXN123")
	v.Set("vnp_Amount", amount)
	v.Set("vnp_ResponseCode", code)
	v.Set("vnp_TransactionStatus", code)
	v.Set("vnp_TransactionNo", "14000001")
	v.Set("vnp_BankCode", "NCB")
	return v
}

func TestVerifyReturn(t *testing.T) {
	c := newTestClient()

	t.Run("success", func(t *testing.T) {
		signed := c.SignParams(callback("300000000", "00"))
		signed.Set(ParamSecureHashType, "HmacSHA512")

		result, err := c.VerifyReturn(signed)
		require.NoError(t, err)
		assert.True(t, result.Success())
		assert.Equal(t, "TXN123", result.TxnRef)
		assert.Equal(t, int64(3000000), result.Amount)
		assert.Equal(t, "14000001", result.TransactionNo)
		assert.Equal(t, "00", result.Raw["vnp_ResponseCode"])
	})

	t.Run("failure code", func(t *testing.T) {
		result, err := c.VerifyReturn(c.SignParams(callback("300000000", "24")))
		require.NoError(t, err)
		assert.False(t, result.Success())
	})

	t.Run("tampered amount", func(t *testing.T) {
		signed := c.SignParams(callback("300000000", "00"))
		signed.Set("vnp_Amount", "100")

		_, err := c.VerifyReturn(signed)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("amount not a multiple of the scale", func(t *testing.T) {
		_, err := c.VerifyReturn(c.SignParams(callback("150", "00")))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestResponseMessage(t *testing.T) {
	assert.Equal(t, "Insufficient balance", ResponseMessage("51"))
	assert.Equal(t, "Unknown gateway error", ResponseMessage("not-a-code"))
}
