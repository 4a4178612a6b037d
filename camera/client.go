package camera

import (
	"crypto/tls"
	"fmt"
	"maps"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"camgate/camera/api"
	"camgate/config"
	"camgate/version"
)

// Client talks to the vendor camera API on behalf of browser clients.
// It attaches the long-lived credential header to every request so the
// credential never leaves the gateway.
type Client struct {
	Logger     *log.Entry
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
}

const FederateTokenURI = "%s/api/v1/federation/token"
const CameraMediaURI = "%s/api/v1/cameras/media"

// CredentialHeader carries the vendor API key on proxy-facing calls.
const CredentialHeader = "X-Api-Key"

var DefaultHeaders = map[string]string{
	"User-Agent": fmt.Sprintf("camgate/%s", version.Version),
	"Accept":     "application/json",
}

func NewClient(c config.VendorConfig, l *log.Entry) *Client {
	headers := maps.Clone(DefaultHeaders)
	headers[CredentialHeader] = c.APIKey

	timeout := time.Duration(c.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		Logger:  l,
		baseURL: c.BaseURL,
		headers: headers,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: c.Insecure},
			},
		},
	}
}

// FederateToken issues exactly one request to the vendor and returns
// the opaque federated session token valid for validitySeconds. The
// token is returned unmodified; callers that fail here must restart
// the whole playback sequence.
func (c *Client) FederateToken(validitySeconds int64) (string, error) {
	resp, err := postJSON[api.FederatedToken](
		c.httpClient,
		fmt.Sprintf(FederateTokenURI, c.baseURL),
		api.FederateTokenRequest{ValidityDuration: validitySeconds},
		c.headers,
	)
	if err != nil {
		c.Logger.WithError(err).Debug("Failed to federate session token")
		return "", err
	}
	return resp.FederatedSessionToken, nil
}

// GetCameraMedia resolves the media endpoints for one camera. The
// response is passed through verbatim; a payload missing the MPD field
// yields an empty manifest URL rather than an error.
func (c *Client) GetCameraMedia(cameraID string) (*api.CameraMedia, error) {
	resp, err := postJSON[api.CameraMedia](
		c.httpClient,
		fmt.Sprintf(CameraMediaURI, c.baseURL),
		api.CameraMediaRequest{CameraID: cameraID},
		c.headers,
	)
	if err != nil {
		c.Logger.WithError(err).WithField("camera", cameraID).Debug("Failed to resolve camera media")
		return nil, err
	}
	return resp, nil
}
