package payout

const (
	CodeSuccess             = "00"
	CodeInvalidAccount      = "01"
	CodeInsufficientFunds   = "02"
	CodeBankRejected        = "03"
	CodeAccountNameMismatch = "04"
	CodeLimitExceeded       = "05"
	CodeBankMaintenance     = "09"
	CodeCancelled           = "24"
	CodeInvalidSignature    = "97"
	CodeUnknown             = "99"
)

var responseMessages = map[string]string{
	CodeSuccess:             "Payout completed",
	CodeInvalidAccount:      "Destination account does not exist",
	CodeInsufficientFunds:   "Merchant payout balance is insufficient",
	CodeBankRejected:        "Destination bank rejected the transfer",
	CodeAccountNameMismatch: "Account holder name does not match",
	CodeLimitExceeded:       "Payout limit exceeded",
	CodeBankMaintenance:     "Destination bank is under maintenance",
	CodeCancelled:           "Payout cancelled",
	CodeInvalidSignature:    "Invalid signature",
	CodeUnknown:             "Unknown payout error",
}

func ResponseMessage(code string) string {
	if msg, ok := responseMessages[code]; ok {
		return msg
	}
	return responseMessages[CodeUnknown]
}
