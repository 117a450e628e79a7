package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/config"
)

func newTestClient(url string) *client {
	cfg := &config.WhatsAppConfig{
		APIURL:         url + "/",
		AccessToken:    "test_token",
		PhoneNumberID:  "1234567890",
		RequestTimeout: 5 * time.Second,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestClient_SendText(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		var got map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/1234567890/messages", r.URL.Path)
			assert.Equal(t, "Bearer test_token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
		}))
		defer server.Close()

		err := newTestClient(server.URL).SendText(context.Background(), "51911111111", "Hola")
		require.NoError(t, err)

		assert.Equal(t, "whatsapp", got["messaging_product"])
		assert.Equal(t, "individual", got["recipient_type"])
		assert.Equal(t, "51911111111", got["to"])
		assert.Equal(t, "text", got["type"])
		assert.Equal(t, map[string]interface{}{"body": "Hola"}, got["text"])
	})

	t.Run("api error includes body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
		}))
		defer server.Close()

		err := newTestClient(server.URL).SendText(context.Background(), "51911111111", "Hola")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
		assert.Contains(t, err.Error(), "Invalid OAuth access token")
	})

	t.Run("context cancelled", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := newTestClient(server.URL).SendText(ctx, "51911111111", "Hola")
		assert.Error(t, err)
	})
}

func TestClient_UploadMedia(t *testing.T) {
	t.Run("multipart upload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/1234567890/media", r.URL.Path)
			assert.Equal(t, "Bearer test_token", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "whatsapp", r.FormValue("messaging_product"))
			assert.Equal(t, "application/pdf", r.FormValue("type"))

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "cotizacion.pdf", header.Filename)
			assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))

			data, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, []byte("%PDF-1.4"), data)

			w.Write([]byte(`{"id":"media-42"}`))
		}))
		defer server.Close()

		id, err := newTestClient(server.URL).UploadMedia(context.Background(), []byte("%PDF-1.4"), "cotizacion.pdf", "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, "media-42", id)
	})

	t.Run("empty id is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).UploadMedia(context.Background(), []byte("x"), "a.png", "image/png")
		assert.Error(t, err)
	})
}

func TestClient_SendMedia(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		kind     string
	}{
		{"image", "image/png", "image"},
		{"pdf", "application/pdf", "document"},
		{"word", "application/msword", "document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/1234567890/messages", r.URL.Path)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			err := newTestClient(server.URL).SendMedia(context.Background(), "51911111111", "media-42", tt.mimeType)
			require.NoError(t, err)

			assert.Equal(t, tt.kind, got["type"])
			assert.Equal(t, map[string]interface{}{"id": "media-42"}, got[tt.kind])
		})
	}
}

func TestClient_EndpointWithoutPhoneNumberID(t *testing.T) {
	c := NewClient(&config.WhatsAppConfig{APIURL: "https://graph.example.com/v1/messages-proxy"}, zap.NewNop()).(*client)
	assert.Equal(t, "https://graph.example.com/v1/messages-proxy/media", c.endpoint("/media"))
}
