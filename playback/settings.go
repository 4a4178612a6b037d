package playback

// Settings is the tuning bag applied to the DASH player before
// playback starts. The shapes and field names follow the dash.js
// settings object so the browser can pass it straight through.
type Settings struct {
	Streaming StreamingSettings `json:"streaming"`
}

type StreamingSettings struct {
	Delay       DelaySettings       `json:"delay"`
	LiveCatchup LiveCatchupSettings `json:"liveCatchup"`
	Buffer      BufferSettings      `json:"buffer"`
	ABR         ABRSettings         `json:"abr"`
}

type DelaySettings struct {
	LiveDelay float64 `json:"liveDelay"`
}

type LiveCatchupSettings struct {
	Enabled      bool                 `json:"enabled"`
	MaxDrift     float64              `json:"maxDrift"`
	PlaybackRate PlaybackRateSettings `json:"playbackRate"`
}

type PlaybackRateSettings struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

type BufferSettings struct {
	StableBufferTime               float64 `json:"stableBufferTime"`
	BufferTimeAtTopQuality         float64 `json:"bufferTimeAtTopQuality"`
	BufferTimeAtTopQualityLongForm float64 `json:"bufferTimeAtTopQualityLongForm"`
}

type ABRSettings struct {
	AutoSwitchBitrate AutoSwitchBitrate `json:"autoSwitchBitrate"`
}

type AutoSwitchBitrate struct {
	Audio bool `json:"audio"`
	Video bool `json:"video"`
}

// DefaultSettings returns the fixed tuning used for live camera
// streams: a short live delay with catch-up enabled, modest buffer
// targets, and adaptive bitrate switching disabled because the vendor
// publishes a single quality per stream.
func DefaultSettings() Settings {
	return Settings{
		Streaming: StreamingSettings{
			Delay: DelaySettings{
				LiveDelay: 3,
			},
			LiveCatchup: LiveCatchupSettings{
				Enabled:  true,
				MaxDrift: 1,
				PlaybackRate: PlaybackRateSettings{
					Max: 0.3,
					Min: -0.3,
				},
			},
			Buffer: BufferSettings{
				StableBufferTime:               8,
				BufferTimeAtTopQuality:         10,
				BufferTimeAtTopQualityLongForm: 10,
			},
			ABR: ABRSettings{
				AutoSwitchBitrate: AutoSwitchBitrate{
					Audio: false,
					Video: false,
				},
			},
		},
	}
}
