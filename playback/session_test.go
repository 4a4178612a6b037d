package playback

import (
	"errors"
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camgate/camera/api"
)

type fakeResolver struct {
	token      string
	tokenErr   error
	media      *api.CameraMedia
	mediaErr   error
	tokenCalls int
	mediaCalls int
	// validity records what the session asked for.
	validity int64
	cameraID string
}

func (f *fakeResolver) FederateToken(validitySeconds int64) (string, error) {
	f.tokenCalls++
	f.validity = validitySeconds
	return f.token, f.tokenErr
}

func (f *fakeResolver) GetCameraMedia(cameraID string) (*api.CameraMedia, error) {
	f.mediaCalls++
	f.cameraID = cameraID
	return f.media, f.mediaErr
}

func testLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}

func TestSessionStartSequence(t *testing.T) {
	fake := &fakeResolver{
		token: "abc123",
		media: &api.CameraMedia{
			WanLiveMpdURI:  "https://x/file.mpd",
			WanLiveM3u8URI: "https://x/file.m3u8",
		},
	}
	s := NewSession(fake, 86400, testLogger())

	p, err := s.Start("cam-1")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.tokenCalls, "token acquisition must issue exactly one call")
	assert.Equal(t, 1, fake.mediaCalls)
	assert.Equal(t, int64(86400), fake.validity)
	assert.Equal(t, "cam-1", fake.cameraID)

	assert.Equal(t, "abc123", p.Token)
	assert.Equal(t, "https://x/file.mpd", p.ManifestURL, "must pick the WAN live MPD field, not a sibling")
	assert.Equal(t, "https://x/file.mpd?x-auth-scheme=federated-token&x-auth-ft=abc123", p.ManifestURLWithToken)
	assert.Equal(t, int64(86400), p.ValiditySeconds)
	assert.False(t, p.Settings.Streaming.ABR.AutoSwitchBitrate.Video)
}

func TestSessionStartTokenFailureAbortsSequence(t *testing.T) {
	fake := &fakeResolver{tokenErr: errors.New("boom")}
	s := NewSession(fake, 3600, testLogger())

	_, err := s.Start("cam-1")
	require.Error(t, err)
	assert.Equal(t, 0, fake.mediaCalls, "media resolution must not run after a token failure")
}

func TestSessionStartMissingManifestField(t *testing.T) {
	fake := &fakeResolver{
		token: "abc123",
		media: &api.CameraMedia{WanLiveM3u8URI: "https://x/file.m3u8"},
	}
	s := NewSession(fake, 3600, testLogger())

	p, err := s.Start("cam-1")
	require.NoError(t, err, "a missing manifest field is a pitfall, not an error")
	assert.Empty(t, p.ManifestURL)
	assert.Empty(t, p.ManifestURLWithToken)
}

func TestSessionFederateTokenDefaultValidity(t *testing.T) {
	fake := &fakeResolver{token: "t"}
	s := NewSession(fake, 86400, testLogger())

	_, err := s.FederateToken(0)
	require.NoError(t, err)
	assert.Equal(t, int64(86400), fake.validity)

	_, err = s.FederateToken(600)
	require.NoError(t, err)
	assert.Equal(t, int64(600), fake.validity)
}

func TestSessionStartWithTokenSkipsFederation(t *testing.T) {
	fake := &fakeResolver{
		media: &api.CameraMedia{WanLiveMpdURI: "https://x/file.mpd"},
	}
	s := NewSession(fake, 3600, testLogger())

	p, err := s.StartWithToken("cam-1", "reused")
	require.NoError(t, err)
	assert.Equal(t, 0, fake.tokenCalls)
	assert.Equal(t, "reused", p.Token)
}
