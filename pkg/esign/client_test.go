package esign

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental-marketplace-be/pkg/clients"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/document/send", r.URL.Path)
		assert.Equal(t, "Bearer api-key", r.Header.Get("Authorization"))

		var req sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		content, err := base64.StdEncoding.DecodeString(req.FileBase64)
		require.NoError(t, err)
		assert.Equal(t, "lease", string(content))
		require.Len(t, req.Signers, 1)
		assert.Equal(t, "tenant@example.com", req.Signers[0].Email)

		_ = json.NewEncoder(w).Encode(sendResponse{DocumentID: "doc-1"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "api-key", clients.NewHTTPClientAdapter(time.Second))
	id, err := client.Send(context.Background(), Document{
		Title:   "Lease",
		Content: []byte("lease"),
		Signer:  Signer{Name: "Tenant", Email: "tenant@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", id)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantErr   error
		retryable bool
	}{
		{name: "server error", status: http.StatusBadGateway, wantErr: ErrUnavailable, retryable: true},
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: ErrUnavailable, retryable: true},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewHTTPClient(server.URL, "k", clients.NewHTTPClientAdapter(time.Second))
			_, err := client.Send(context.Background(), Document{Content: []byte("x")})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.retryable, IsRetryable(err))
		})
	}
}

func TestHTTPClient_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/document/download", r.URL.Path)
		if r.URL.Query().Get("documentId") != "doc-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("%PDF-signed"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "k", clients.NewHTTPClientAdapter(time.Second))

	body, err := client.Download(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-signed", string(body))

	_, err = client.Download(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
