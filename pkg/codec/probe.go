package codec

import (
	"errors"
	"fmt"

	"github.com/bluenviron/mediacommon/v2/pkg/codecs/av1"
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h264"
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h265"
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/mpeg4audio"
)

// Probe errors.
var (
	// ErrUnknownCodec indicates a codec the registry has no entry for.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrInvalidInitData indicates initialization data that does not parse
	// for the declared codec.
	ErrInvalidInitData = errors.New("invalid codec initialization data")
)

// Probe is what initialization-data validation learned about a format.
type Probe struct {
	// Validated is true when a parser actually ran on the data. Codecs
	// whose initialization data has no parser leave it false.
	Validated bool

	// SampleRate and ChannelCount are filled for audio codecs that carry
	// them in their initialization data.
	SampleRate   int
	ChannelCount int
}

// ProbeInitData validates the decoder initialization data a format carries
// against its declared codec. The codec name may be a canonical name, an
// alias or an RFC 6381 string. Known codecs without a parser, and empty
// initialization data, return a zero Probe with no error.
func ProbeInitData(codecName string, initData [][]byte) (Probe, error) {
	name := NormalizeRFC6381(codecName)
	if !Known(name) {
		return Probe{}, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}
	if len(initData) == 0 {
		return Probe{}, nil
	}

	switch name {
	case string(VideoH264):
		var sps h264.SPS
		if err := sps.Unmarshal(initData[0]); err != nil {
			return Probe{}, fmt.Errorf("%w: h264 sps: %v", ErrInvalidInitData, err)
		}
		return Probe{Validated: true}, nil

	case string(VideoH265):
		// Initialization data order is VPS, SPS, PPS.
		if len(initData) < 2 {
			return Probe{}, nil
		}
		var sps h265.SPS
		if err := sps.Unmarshal(initData[1]); err != nil {
			return Probe{}, fmt.Errorf("%w: h265 sps: %v", ErrInvalidInitData, err)
		}
		return Probe{Validated: true}, nil

	case string(VideoAV1):
		var hdr av1.SequenceHeader
		if err := hdr.Unmarshal(initData[0]); err != nil {
			return Probe{}, fmt.Errorf("%w: av1 sequence header: %v", ErrInvalidInitData, err)
		}
		return Probe{Validated: true}, nil

	case string(AudioAAC):
		var asc mpeg4audio.AudioSpecificConfig
		if err := asc.Unmarshal(initData[0]); err != nil {
			return Probe{}, fmt.Errorf("%w: aac audio specific config: %v", ErrInvalidInitData, err)
		}
		return Probe{
			Validated:    true,
			SampleRate:   asc.SampleRate,
			ChannelCount: asc.ChannelCount,
		}, nil
	}

	return Probe{}, nil
}
