package esign

import (
	"net/url"

	"rental-marketplace-be/pkg/gateway/signer"
)

// WebhookSignatureHeader carries the provider's signature when the body does not.
const WebhookSignatureHeader = "X-Esign-Signature"

func webhookParams(documentID, status, eventType string) url.Values {
	return url.Values{
		"documentId": {documentID},
		"status":     {status},
		"eventType":  {eventType},
	}
}

// SignWebhook signs the webhook fields the same way the payment gateways do:
// HMAC-SHA512 over the sorted query string.
func SignWebhook(secret, documentID, status, eventType string) string {
	return signer.Sign(webhookParams(documentID, status, eventType), secret)
}

// VerifyWebhook reports whether signature covers the webhook fields. An empty
// secret never verifies.
func VerifyWebhook(secret, documentID, status, eventType, signature string) bool {
	if secret == "" {
		return false
	}
	return signer.Verify(webhookParams(documentID, status, eventType), secret, signature)
}
