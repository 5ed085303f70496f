package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) service.APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(&config.APIConfig{BaseURL: srv.URL + "/"}, srv.Client(), newDiscardLogger())
	require.NoError(t, err)

	return c
}

func TestClient_Do_SendsBearerAndJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/discounts", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(headerRequestID))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SAVE10", body["code"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"d1"}`))
	})

	body, err := c.Do(context.Background(), &service.Request{
		Method: http.MethodPost,
		Path:   "/api/discounts",
		Token:  "tok",
		Body:   map[string]string{"code": "SAVE10"},
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"d1"}`, string(body))
}

func TestClient_Do_PublicRouteHasNoAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "p1", r.URL.Query().Get("productId"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.Do(context.Background(), &service.Request{
		Method: http.MethodGet,
		Path:   "/api/reviews",
		Query:  map[string]string{"productId": "p1"},
	})
	require.NoError(t, err)
}

func TestClient_Do_MapsRejection(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"message field", http.StatusBadRequest, `{"message":"Code already exists"}`, "Code already exists"},
		{"error string", http.StatusUnauthorized, `{"error":"jwt expired"}`, "jwt expired"},
		{"nested error", http.StatusForbidden, `{"error":{"message":"admins only"}}`, "admins only"},
		{"plain text", http.StatusNotFound, `Not here`, "Not here"},
		{"empty body", http.StatusInternalServerError, ``, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Do(context.Background(), &service.Request{Method: http.MethodGet, Path: "/api/orders"})

			var apiErr *domainerrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message())
			assert.False(t, apiErr.Transport())
		})
	}
}

func TestClient_Do_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c, err := New(&config.APIConfig{BaseURL: srv.URL}, &http.Client{Timeout: time.Second}, newDiscardLogger())
	require.NoError(t, err)

	_, err = c.Do(context.Background(), &service.Request{Method: http.MethodGet, Path: "/api/products"})

	var apiErr *domainerrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Transport())
	assert.Equal(t, http.StatusBadGateway, apiErr.HTTPCode())
}

func TestClient_Do_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Ada", r.FormValue("name"))

		file, header, err := r.FormFile("profileImage")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "avatar.png", header.Filename)
		assert.Equal(t, "png-bytes", string(content))

		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.Do(context.Background(), &service.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/register",
		Fields: map[string]string{"name": "Ada"},
		File:   &service.FilePart{Field: "profileImage", Filename: "avatar.png", Content: strings.NewReader("png-bytes")},
	})
	require.NoError(t, err)
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New(&config.APIConfig{BaseURL: "api.local"}, http.DefaultClient, newDiscardLogger())
	assert.Error(t, err)
}
