package playback

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"camgate/camera/api"
)

// MediaResolver is the subset of the vendor client the playback
// sequence needs.
type MediaResolver interface {
	FederateToken(validitySeconds int64) (string, error)
	GetCameraMedia(cameraID string) (*api.CameraMedia, error)
}

// Playback bundles everything a player needs to start one session.
type Playback struct {
	Token       string `json:"federatedSessionToken"`
	CameraID    string `json:"cameraId"`
	ManifestURL string `json:"manifestUrl"`
	// ManifestURLWithToken is the manifest with the authentication
	// parameters already appended, for players without a request hook.
	ManifestURLWithToken string   `json:"manifestUrlWithToken"`
	Settings             Settings `json:"settings"`
	// ValiditySeconds tells the browser how long the token lives so it
	// can schedule its own wall-clock refresh timer.
	ValiditySeconds int64 `json:"validitySeconds"`
}

// Session runs the one-shot startup sequence for a camera: token, then
// manifest, then the settings bag. The steps are strictly sequential
// with no concurrent requests; any failure aborts the sequence and the
// caller must restart it from the beginning.
type Session struct {
	Logger          *log.Entry
	client          MediaResolver
	validitySeconds int64
}

func NewSession(client MediaResolver, validitySeconds int64, l *log.Entry) *Session {
	return &Session{
		Logger:          l,
		client:          client,
		validitySeconds: validitySeconds,
	}
}

// FederateToken requests a token with the given validity, falling
// back to the session default when validitySeconds is not positive.
func (s *Session) FederateToken(validitySeconds int64) (string, error) {
	if validitySeconds <= 0 {
		validitySeconds = s.validitySeconds
	}
	return s.client.FederateToken(validitySeconds)
}

// CameraMedia resolves the vendor media object for one camera.
func (s *Session) CameraMedia(cameraID string) (*api.CameraMedia, error) {
	return s.client.GetCameraMedia(cameraID)
}

// Start performs the sequence for cameraID and returns the playback
// bundle. The manifest URL is the wide-area live MPD field verbatim; a
// vendor payload without that field produces an empty URL here rather
// than an error.
func (s *Session) Start(cameraID string) (*Playback, error) {
	token, err := s.client.FederateToken(s.validitySeconds)
	if err != nil {
		return nil, fmt.Errorf("federate token: %w", err)
	}
	return s.StartWithToken(cameraID, token)
}

// StartWithToken runs the media resolution half of the sequence with a
// token obtained elsewhere, typically the background refresher.
func (s *Session) StartWithToken(cameraID, token string) (*Playback, error) {
	media, err := s.client.GetCameraMedia(cameraID)
	if err != nil {
		return nil, fmt.Errorf("resolve media for camera %s: %w", cameraID, err)
	}

	manifest := media.WanLiveMpdURI
	if manifest == "" {
		s.Logger.WithField("camera", cameraID).Warn("Vendor response has no WAN live MPD URI, playback URL will be empty")
	}

	p := &Playback{
		Token:           token,
		CameraID:        cameraID,
		ManifestURL:     manifest,
		Settings:        DefaultSettings(),
		ValiditySeconds: s.validitySeconds,
	}
	if manifest != "" {
		p.ManifestURLWithToken = RewriteURL(manifest, token)
	}
	return p, nil
}
