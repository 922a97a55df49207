package codec

import (
	"slices"

	"github.com/jmylchreest/playkit/pkg/media"
	"github.com/jmylchreest/playkit/pkg/renderer"
)

// SupportChecker answers renderer format-support queries from declarative
// limits. Its Check method satisfies the FormatSupport field of
// renderer.BaseConfig.
type SupportChecker struct {
	// TrackType is the kind of track the renderer consumes. Formats of any
	// other kind grade as unsupported-type.
	TrackType media.TrackType

	// Codecs lists accepted canonical codec names. Empty accepts every
	// known codec of the track type.
	Codecs []string

	// MaxWidth and MaxHeight bound video dimensions. Zero means unbounded.
	MaxWidth  int
	MaxHeight int

	// MaxChannels bounds the audio channel count. Zero means unbounded.
	MaxChannels int

	// ProbeInit validates initialization data when a format carries any;
	// formats whose data does not parse grade as unsupported-subtype.
	ProbeInit bool

	// Adaptive and Tunneling are reported for formats that pass the codec
	// check.
	Adaptive  renderer.AdaptiveSupport
	Tunneling bool
}

// Check grades support for f.
func (c SupportChecker) Check(f media.Format) (renderer.Capability, error) {
	name := NormalizeRFC6381(f.Codec)
	if TrackTypeOf(name) != c.TrackType {
		return renderer.Capability{Format: renderer.FormatUnsupportedType}, nil
	}
	if len(c.Codecs) > 0 && !slices.Contains(c.Codecs, name) {
		return renderer.Capability{Format: renderer.FormatUnsupportedSubtype}, nil
	}
	if c.ProbeInit && len(f.InitData) > 0 {
		if _, err := ProbeInitData(name, f.InitData); err != nil {
			return renderer.Capability{Format: renderer.FormatUnsupportedSubtype}, nil
		}
	}

	if (c.MaxWidth > 0 && f.Width > c.MaxWidth) ||
		(c.MaxHeight > 0 && f.Height > c.MaxHeight) ||
		(c.MaxChannels > 0 && f.ChannelCount > c.MaxChannels) {
		return renderer.Capability{
			Format:    renderer.FormatExceedsCapabilities,
			Adaptive:  c.Adaptive,
			Tunneling: c.Tunneling,
		}, nil
	}

	return renderer.Capability{
		Format:    renderer.FormatHandled,
		Adaptive:  c.Adaptive,
		Tunneling: c.Tunneling,
	}, nil
}
