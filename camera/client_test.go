package camera

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camgate/camera/api"
	"camgate/config"
)

func testLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}

func newTestClient(baseURL string) *Client {
	return NewClient(config.VendorConfig{
		BaseURL:        baseURL,
		APIKey:         "super-secret",
		TimeoutSeconds: 2,
	}, testLogger())
}

func TestFederateToken(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/federation/token", r.URL.Path)
		assert.Equal(t, "super-secret", r.Header.Get(CredentialHeader))

		var req api.FederateTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(86400), req.ValidityDuration)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.FederatedToken{FederatedSessionToken: "abc123"})
	}))
	defer srv.Close()

	token, err := newTestClient(srv.URL).FederateToken(86400)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token, "token must be returned unmodified")
	assert.Equal(t, 1, calls, "exactly one outbound call")
}

func TestGetCameraMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/cameras/media", r.URL.Path)
		assert.Equal(t, "super-secret", r.Header.Get(CredentialHeader))

		var req api.CameraMediaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cam-1", req.CameraID)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"wanLiveMpdUri":"https://x/file.mpd","wanLiveM3u8Uri":"https://x/file.m3u8"}`)
	}))
	defer srv.Close()

	media, err := newTestClient(srv.URL).GetCameraMedia("cam-1")
	require.NoError(t, err)
	assert.Equal(t, "https://x/file.mpd", media.WanLiveMpdURI)
	assert.Equal(t, "https://x/file.m3u8", media.WanLiveM3u8URI)
}

func TestFederateTokenNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FederateToken(3600)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFederateTokenMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"federatedSessionToken":`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FederateToken(3600)
	require.Error(t, err)
}

func TestFederateTokenUnexpectedContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<html></html>")
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FederateToken(3600)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content-type")
}

func TestFederateTokenTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).FederateToken(3600)
	require.Error(t, err)
}
