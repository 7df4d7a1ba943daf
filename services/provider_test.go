package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keeper/models"
)

func newTestGoogleProvider(t *testing.T, tokenStatus int, tokenBody, userBody map[string]string) *GoogleProvider {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		w.WriteHeader(tokenStatus)
		json.NewEncoder(w).Encode(tokenBody)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-access", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(userBody)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &GoogleProvider{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost/callback",
		TokenURL:     server.URL + "/token",
		UserInfoURL:  server.URL + "/userinfo",
		HTTPClient:   server.Client(),
	}
}

func TestGoogleExchange(t *testing.T) {
	provider := newTestGoogleProvider(t, http.StatusOK,
		map[string]string{"access_token": "test-access"},
		map[string]string{
			"id":      "g-123",
			"name":    "Alice",
			"email":   "alice@example.com",
			"picture": "https://example.com/a.png",
		})

	info, err := provider.Exchange("auth-code")
	require.NoError(t, err)
	assert.Equal(t, "g-123", info.UID)
	assert.Equal(t, "Alice", info.Name)
	assert.Equal(t, "alice@example.com", info.Email)
}

func TestGoogleExchangeTokenFailure(t *testing.T) {
	provider := newTestGoogleProvider(t, http.StatusBadRequest,
		map[string]string{"error_description": "invalid grant"}, nil)

	_, err := provider.Exchange("bad-code")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "invalid grant")
}

func TestSupportedProvider(t *testing.T) {
	provider, err := SupportedProvider("google")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderGoogle, provider)

	_, err = SupportedProvider("kakao")
	assert.True(t, IsValidation(err))

	_, err = SupportedProvider("naver")
	assert.True(t, IsValidation(err))
}
