// Package signer implements the shared-secret signing used by the payment and
// payout gateways: an HMAC-SHA512 over the canonical (key-sorted,
// URL-encoded) query string.
package signer

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strings"
)

// Canonical returns the parameters as a query string sorted by key. Empty
// values are dropped.
func Canonical(params url.Values) string {
	clean := url.Values{}
	for key, values := range params {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		clean.Set(key, values[0])
	}
	return clean.Encode()
}

func Sign(params url.Values, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(Canonical(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time. The signature is case-insensitive hex.
func Verify(params url.Values, secret, signature string) bool {
	if signature == "" {
		return false
	}
	expected := Sign(params, secret)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// Strip returns a copy of params without the given keys, together with the
// first value of the first key, which is taken to be the signature.
func Strip(params url.Values, signatureKey string, extra ...string) (url.Values, string) {
	signature := params.Get(signatureKey)
	out := url.Values{}
	for key, values := range params {
		out[key] = append([]string(nil), values...)
	}
	out.Del(signatureKey)
	for _, key := range extra {
		out.Del(key)
	}
	return out, signature
}
