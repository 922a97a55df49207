package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/playkit/pkg/media"
	"github.com/jmylchreest/playkit/pkg/renderer"
)

func TestSupportCheckerGrades(t *testing.T) {
	checker := SupportChecker{
		TrackType: media.TrackTypeVideo,
		Codecs:    []string{"h264", "h265"},
		MaxWidth:  1920,
		MaxHeight: 1080,
		Adaptive:  renderer.AdaptiveSeamless,
		Tunneling: true,
	}

	tests := []struct {
		name   string
		format media.Format
		want   renderer.FormatSupport
	}{
		{
			name:   "handled",
			format: media.Format{ID: "v0", Codec: "avc1.64001f", Width: 1280, Height: 720},
			want:   renderer.FormatHandled,
		},
		{
			name:   "wrong track type",
			format: media.Format{ID: "a0", Codec: "aac"},
			want:   renderer.FormatUnsupportedType,
		},
		{
			name:   "unknown codec",
			format: media.Format{ID: "v1", Codec: "midi"},
			want:   renderer.FormatUnsupportedType,
		},
		{
			name:   "codec outside allow list",
			format: media.Format{ID: "v2", Codec: "vp09.00.10.08", Width: 640},
			want:   renderer.FormatUnsupportedSubtype,
		},
		{
			name:   "too wide",
			format: media.Format{ID: "v3", Codec: "h264", Width: 3840, Height: 1080},
			want:   renderer.FormatExceedsCapabilities,
		},
		{
			name:   "too tall",
			format: media.Format{ID: "v4", Codec: "h265", Width: 1920, Height: 2160},
			want:   renderer.FormatExceedsCapabilities,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.Check(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format)

			if got.Format == renderer.FormatHandled {
				assert.Equal(t, renderer.AdaptiveSeamless, got.Adaptive)
				assert.True(t, got.Tunneling)
			}
		})
	}
}

func TestSupportCheckerAudioLimits(t *testing.T) {
	checker := SupportChecker{
		TrackType:   media.TrackTypeAudio,
		MaxChannels: 2,
	}

	got, err := checker.Check(media.Format{ID: "a0", Codec: "eac3", ChannelCount: 6})
	require.NoError(t, err)
	assert.Equal(t, renderer.FormatExceedsCapabilities, got.Format)

	got, err = checker.Check(media.Format{ID: "a1", Codec: "aac", ChannelCount: 2})
	require.NoError(t, err)
	assert.Equal(t, renderer.FormatHandled, got.Format)
}

func TestSupportCheckerProbesInitData(t *testing.T) {
	checker := SupportChecker{
		TrackType: media.TrackTypeAudio,
		ProbeInit: true,
	}

	good := media.Format{ID: "a0", Codec: "aac", InitData: [][]byte{aacLC44100Stereo}}
	got, err := checker.Check(good)
	require.NoError(t, err)
	assert.Equal(t, renderer.FormatHandled, got.Format)

	bad := media.Format{ID: "a1", Codec: "aac", InitData: [][]byte{{}}}
	got, err = checker.Check(bad)
	require.NoError(t, err)
	assert.Equal(t, renderer.FormatUnsupportedSubtype, got.Format)
}
