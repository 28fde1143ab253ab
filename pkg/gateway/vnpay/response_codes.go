package vnpay

var responseMessages = map[string]string{
	"00": "Transaction successful",
	"07": "Amount deducted but the transaction is under fraud review",
	"09": "Card or account is not registered for internet banking",
	"10": "Card or account verification failed more than 3 times",
	"11": "Payment window expired",
	"12": "Card or account is locked",
	"13": "Wrong one-time password",
	"24": "Transaction cancelled by the customer",
	"51": "Insufficient balance",
	"65": "Daily transaction limit exceeded",
	"75": "Issuing bank is under maintenance",
	"79": "Wrong payment password entered too many times",
	"99": "Unknown gateway error",
}

// ResponseMessage translates vnp_ResponseCode into a message safe to show the
// tenant and to store as the payment's failure reason.
func ResponseMessage(code string) string {
	if msg, ok := responseMessages[code]; ok {
		return msg
	}
	return responseMessages["99"]
}

// IPN acknowledgement codes returned to the gateway.
const (
	IPNConfirmed        = "00"
	IPNOrderNotFound    = "01"
	IPNAlreadyConfirmed = "02"
	IPNInvalidAmount    = "04"
	IPNInvalidSignature = "97"
	IPNUnknownError     = "99"
)

type IPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

var ipnMessages = map[string]string{
	IPNConfirmed:        "Confirm Success",
	IPNOrderNotFound:    "Order not found",
	IPNAlreadyConfirmed: "Order already confirmed",
	IPNInvalidAmount:    "Invalid amount",
	IPNInvalidSignature: "Invalid signature",
	IPNUnknownError:     "Unknown error",
}

func NewIPNResponse(code string) IPNResponse {
	return IPNResponse{RspCode: code, Message: ipnMessages[code]}
}
