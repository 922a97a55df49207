// Package codec provides canonical codec identities for playback formats.
// It normalizes the many aliases codecs travel under, including RFC 6381
// strings from streaming manifests, classifies codecs by track type, and
// validates decoder initialization data.
package codec

import (
	"strings"

	"github.com/jmylchreest/playkit/pkg/media"
)

// Video represents a video codec.
type Video string

// Video codec constants.
const (
	VideoH264  Video = "h264"
	VideoH265  Video = "h265"
	VideoVP8   Video = "vp8"
	VideoVP9   Video = "vp9"
	VideoAV1   Video = "av1"
	VideoMPEG2 Video = "mpeg2"
)

// Audio represents an audio codec.
type Audio string

// Audio codec constants.
const (
	AudioAAC    Audio = "aac"    // AAC
	AudioMP3    Audio = "mp3"    // MP3
	AudioAC3    Audio = "ac3"    // Dolby Digital (AC-3)
	AudioEAC3   Audio = "eac3"   // Dolby Digital Plus (E-AC-3)
	AudioOpus   Audio = "opus"   // Opus
	AudioVorbis Audio = "vorbis" // Vorbis
	AudioFLAC   Audio = "flac"   // FLAC
	AudioPCM    Audio = "pcm"    // PCM
)

// Text represents a text or caption codec.
type Text string

// Text codec constants.
const (
	TextWebVTT Text = "webvtt"
	TextTTML   Text = "ttml"
	TextSRT    Text = "srt"
	TextCEA608 Text = "cea608"
	TextCEA708 Text = "cea708"
)

// Meta represents a timed-metadata codec.
type Meta string

// Timed-metadata codec constants.
const (
	MetaID3    Meta = "id3"
	MetaEMSG   Meta = "emsg"
	MetaSCTE35 Meta = "scte35"
)

// String returns the string representation of the video codec.
func (v Video) String() string {
	return string(v)
}

// String returns the string representation of the audio codec.
func (a Audio) String() string {
	return string(a)
}

// String returns the string representation of the text codec.
func (t Text) String() string {
	return string(t)
}

// String returns the string representation of the metadata codec.
func (m Meta) String() string {
	return string(m)
}

// codecInfo contains metadata about a codec.
type codecInfo struct {
	// Canonical name (h264, aac, webvtt, ...)
	Name string
	// Track type the codec belongs to
	Kind media.TrackType
	// All known aliases that map to this codec
	Aliases []string
}

// videoRegistry contains all video codec definitions.
var videoRegistry = map[Video]*codecInfo{
	VideoH264: {
		Name: string(VideoH264),
		Kind: media.TrackTypeVideo,
		Aliases: []string{
			"h264", "avc", "avc1", "avc3", "h.264",
		},
	},
	VideoH265: {
		Name: string(VideoH265),
		Kind: media.TrackTypeVideo,
		Aliases: []string{
			"h265", "hevc", "hev1", "hvc1", "h.265",
		},
	},
	VideoVP8: {
		Name:    string(VideoVP8),
		Kind:    media.TrackTypeVideo,
		Aliases: []string{"vp8", "vp08"},
	},
	VideoVP9: {
		Name:    string(VideoVP9),
		Kind:    media.TrackTypeVideo,
		Aliases: []string{"vp9", "vp09"},
	},
	VideoAV1: {
		Name:    string(VideoAV1),
		Kind:    media.TrackTypeVideo,
		Aliases: []string{"av1", "av01"},
	},
	VideoMPEG2: {
		Name:    string(VideoMPEG2),
		Kind:    media.TrackTypeVideo,
		Aliases: []string{"mpeg2", "mpeg2video", "mpeg-2"},
	},
}

// audioRegistry contains all audio codec definitions.
var audioRegistry = map[Audio]*codecInfo{
	AudioAAC: {
		Name:    string(AudioAAC),
		Kind:    media.TrackTypeAudio,
		Aliases: []string{"aac", "mp4a", "aac_latm", "he-aac"},
	},
	AudioMP3: {
		Name:    string(AudioMP3),
		Kind:    media.TrackTypeAudio,
		Aliases: []string{"mp3", "mpga", "mp4a.69", "mp4a.6b"},
	},
	AudioAC3: {
		Name:    string(AudioAC3),
		Kind:    media.TrackTypeAudio,
		Aliases: []string{"ac3", "ac-3", "dolby-digital"},
	},
	AudioEAC3: {
		Name:    string(AudioEAC3),
		Kind:    media.TrackTypeAudio,
		Aliases: []string{"eac3", "ec-3", "e-ac-3", "ddp", "dolby-digital-plus"},
	},
	AudioOpus: {
		Name:    string(AudioOpus),
		Kind:    media.TrackTypeAudio,
		Aliases: []string{"opus"},
	},
	AudioVorbis: {
		Name:    string(AudioVorbis),
		Kind:    media.TrackTypeAudio,
		Aliases: []string{"vorbis"},
	},
	AudioFLAC: {
		Name:    string(AudioFLAC),
		Kind:    media.TrackTypeAudio,
		Aliases: []string{"flac"},
	},
	AudioPCM: {
		Name:    string(AudioPCM),
		Kind:    media.TrackTypeAudio,
		Aliases: []string{"pcm", "lpcm", "pcm_s16le", "pcm_s16be"},
	},
}

// textRegistry contains all text codec definitions.
var textRegistry = map[Text]*codecInfo{
	TextWebVTT: {
		Name:    string(TextWebVTT),
		Kind:    media.TrackTypeText,
		Aliases: []string{"webvtt", "wvtt", "vtt"},
	},
	TextTTML: {
		Name:    string(TextTTML),
		Kind:    media.TrackTypeText,
		Aliases: []string{"ttml", "stpp", "dfxp"},
	},
	TextSRT: {
		Name:    string(TextSRT),
		Kind:    media.TrackTypeText,
		Aliases: []string{"srt", "subrip"},
	},
	TextCEA608: {
		Name:    string(TextCEA608),
		Kind:    media.TrackTypeText,
		Aliases: []string{"cea608", "cea-608", "eia-608"},
	},
	TextCEA708: {
		Name:    string(TextCEA708),
		Kind:    media.TrackTypeText,
		Aliases: []string{"cea708", "cea-708", "eia-708"},
	},
}

// metaRegistry contains all timed-metadata codec definitions.
var metaRegistry = map[Meta]*codecInfo{
	MetaID3: {
		Name:    string(MetaID3),
		Kind:    media.TrackTypeMetadata,
		Aliases: []string{"id3"},
	},
	MetaEMSG: {
		Name:    string(MetaEMSG),
		Kind:    media.TrackTypeMetadata,
		Aliases: []string{"emsg"},
	},
	MetaSCTE35: {
		Name:    string(MetaSCTE35),
		Kind:    media.TrackTypeMetadata,
		Aliases: []string{"scte35", "scte-35"},
	},
}

// aliasIndex maps lowercase aliases to codec info, built once at init.
var aliasIndex = map[string]*codecInfo{}

func init() {
	for _, info := range videoRegistry {
		for _, alias := range info.Aliases {
			aliasIndex[strings.ToLower(alias)] = info
		}
	}
	for _, info := range audioRegistry {
		for _, alias := range info.Aliases {
			aliasIndex[strings.ToLower(alias)] = info
		}
	}
	for _, info := range textRegistry {
		for _, alias := range info.Aliases {
			aliasIndex[strings.ToLower(alias)] = info
		}
	}
	for _, info := range metaRegistry {
		for _, alias := range info.Aliases {
			aliasIndex[strings.ToLower(alias)] = info
		}
	}
}

func lookup(s string) (*codecInfo, bool) {
	if s == "" {
		return nil, false
	}
	info, ok := aliasIndex[strings.ToLower(strings.TrimSpace(s))]
	return info, ok
}

// ParseVideo converts a codec name or alias to a canonical Video codec.
func ParseVideo(s string) (Video, bool) {
	info, ok := lookup(s)
	if !ok || info.Kind != media.TrackTypeVideo {
		return "", false
	}
	return Video(info.Name), true
}

// ParseAudio converts a codec name or alias to a canonical Audio codec.
func ParseAudio(s string) (Audio, bool) {
	info, ok := lookup(s)
	if !ok || info.Kind != media.TrackTypeAudio {
		return "", false
	}
	return Audio(info.Name), true
}

// ParseText converts a codec name or alias to a canonical Text codec.
func ParseText(s string) (Text, bool) {
	info, ok := lookup(s)
	if !ok || info.Kind != media.TrackTypeText {
		return "", false
	}
	return Text(info.Name), true
}

// Normalize converts a codec name or alias to its canonical name. Unknown
// names are returned unchanged.
func Normalize(name string) string {
	if info, ok := lookup(name); ok {
		return info.Name
	}
	return name
}

// NormalizeRFC6381 converts a codec string to its canonical name, handling
// RFC 6381 strings as found in HLS and DASH manifests ("avc1.64001f",
// "mp4a.40.2", "hvc1.1.6.L93.B0"). Unknown strings are returned unchanged.
func NormalizeRFC6381(name string) string {
	if name == "" {
		return name
	}

	lower := strings.ToLower(strings.TrimSpace(name))

	// Exact match handles simple cases like "h264", "aac" and dotted
	// aliases like "mp4a.69".
	if info, ok := lookup(lower); ok {
		return info.Name
	}

	// RFC 6381 strings carry a four-character sample entry code before the
	// first dot.
	if len(lower) >= 4 && strings.Contains(lower, ".") {
		switch lower[:4] {
		case "avc1", "avc3":
			return string(VideoH264)
		case "hev1", "hvc1":
			return string(VideoH265)
		case "vp08":
			return string(VideoVP8)
		case "vp09":
			return string(VideoVP9)
		case "av01":
			return string(VideoAV1)
		case "mp4a":
			return string(AudioAAC) // mp4a.40.2 = AAC-LC, mp4a.40.5 = HE-AAC, etc.
		case "ac-3":
			return string(AudioAC3)
		case "ec-3":
			return string(AudioEAC3)
		case "wvtt":
			return string(TextWebVTT)
		case "stpp":
			return string(TextTTML)
		}
	}

	return name
}

// TrackTypeOf reports which kind of track a codec belongs to, accepting
// canonical names, aliases and RFC 6381 strings. Unknown codecs report
// media.TrackTypeUnknown.
func TrackTypeOf(name string) media.TrackType {
	if info, ok := lookup(NormalizeRFC6381(name)); ok {
		return info.Kind
	}
	return media.TrackTypeUnknown
}

// Known reports whether the codec resolves to a registry entry.
func Known(name string) bool {
	_, ok := lookup(NormalizeRFC6381(name))
	return ok
}

// Match reports whether two codec strings identify the same codec once
// normalized.
func Match(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(NormalizeRFC6381(a), NormalizeRFC6381(b))
}
