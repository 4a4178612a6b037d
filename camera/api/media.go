package api

// FederateTokenRequest asks the vendor for a federated session token
// valid for the given number of seconds.
type FederateTokenRequest struct {
	ValidityDuration int64 `json:"validityDuration"`
}

// FederatedToken is the vendor's token issuance response. The token is
// opaque; it is only ever echoed back as a query parameter on media
// requests.
type FederatedToken struct {
	FederatedSessionToken string `json:"federatedSessionToken"`
}

// CameraMediaRequest resolves the media endpoints of a single camera.
type CameraMediaRequest struct {
	CameraID string `json:"cameraId"`
}

// CameraMedia lists the stream entry points the vendor exposes for one
// camera. Live DASH playback over the internet uses WanLiveMpdURI; the
// sibling fields are alternative protocols for the same stream and are
// easy to pick by mistake.
type CameraMedia struct {
	CameraID       string `json:"cameraId"`
	WanLiveMpdURI  string `json:"wanLiveMpdUri"`
	WanLiveM3u8URI string `json:"wanLiveM3u8Uri"`
	WanLiveWsURI   string `json:"wanLiveWsUri"`
	LanLiveMpdURI  string `json:"lanLiveMpdUri"`
	LanLiveM3u8URI string `json:"lanLiveM3u8Uri"`
}
