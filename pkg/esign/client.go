// Package esign is the client for the e-signature provider.
package esign

//go:generate mockgen -source=client.go -destination=mock_client.go -package=esign

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"rental-marketplace-be/pkg/clients"
)

var (
	ErrUnauthorized  = errors.New("esign: unauthorized")
	ErrNotFound      = errors.New("esign: document not found")
	ErrBadRequest    = errors.New("esign: request rejected")
	ErrUnavailable   = errors.New("esign: provider unavailable")
	ErrEmptyResponse = errors.New("esign: empty document id")
)

// Provider event types carried by the webhook.
const (
	EventCompleted = "Completed"
	EventDeclined  = "Declined"
	EventSent      = "Sent"
	EventViewed    = "Viewed"
)

type Client interface {
	Send(ctx context.Context, doc Document) (string, error)
	Download(ctx context.Context, documentID string) ([]byte, error)
}

type FieldPlacement struct {
	Page   int     `json:"page"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Signer struct {
	Name   string           `json:"name"`
	Email  string           `json:"email"`
	Fields []FieldPlacement `json:"fields"`
}

type Document struct {
	Title     string
	FileName  string
	Content   []byte
	Signer    Signer
	Reference string
}

type sendRequest struct {
	Title      string   `json:"title"`
	FileName   string   `json:"file_name"`
	FileBase64 string   `json:"file_base64"`
	Signers    []Signer `json:"signers"`
	Reference  string   `json:"reference"`
}

type sendResponse struct {
	DocumentID string `json:"document_id"`
}

type HTTPClient struct {
	baseURL string
	apiKey  string
	http    clients.HTTPClientI
}

func NewHTTPClient(baseURL, apiKey string, httpClient clients.HTTPClientI) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, apiKey: apiKey, http: httpClient}
}

func (c *HTTPClient) headers() http.Header {
	return http.Header{
		"Authorization": []string{"Bearer " + c.apiKey},
		"Content-Type":  []string{"application/json"},
	}
}

func (c *HTTPClient) Send(ctx context.Context, doc Document) (string, error) {
	body, err := json.Marshal(sendRequest{
		Title:      doc.Title,
		FileName:   doc.FileName,
		FileBase64: base64.StdEncoding.EncodeToString(doc.Content),
		Signers:    []Signer{doc.Signer},
		Reference:  doc.Reference,
	})
	if err != nil {
		return "", err
	}

	status, respBody, err := c.http.Post(ctx, c.baseURL+"/document/send", c.headers(), body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := statusError(status); err != nil {
		return "", err
	}

	var resp sendResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("esign: decode send response: %w", err)
	}
	if resp.DocumentID == "" {
		return "", ErrEmptyResponse
	}
	return resp.DocumentID, nil
}

func (c *HTTPClient) Download(ctx context.Context, documentID string) ([]byte, error) {
	endpoint := c.baseURL + "/document/download?documentId=" + url.QueryEscape(documentID)
	status, body, err := c.http.Get(ctx, endpoint, c.headers())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := statusError(status); err != nil {
		return nil, err
	}
	return body, nil
}

func statusError(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	default:
		return fmt.Errorf("%w: status %d", ErrBadRequest, status)
	}
}

// IsRetryable reports whether a failed call may succeed if repeated.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
