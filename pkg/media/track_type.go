package media

import "strings"

// TrackType identifies the kind of content a track carries.
type TrackType int

const (
	TrackTypeUnknown TrackType = iota
	TrackTypeAudio
	TrackTypeVideo
	TrackTypeText
	TrackTypeMetadata
)

// String returns the lowercase name of the track type.
func (t TrackType) String() string {
	switch t {
	case TrackTypeAudio:
		return "audio"
	case TrackTypeVideo:
		return "video"
	case TrackTypeText:
		return "text"
	case TrackTypeMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// ParseTrackType converts a track type name to a TrackType. It accepts the
// names produced by String in any case, and reports false for anything else.
func ParseTrackType(s string) (TrackType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "audio":
		return TrackTypeAudio, true
	case "video":
		return TrackTypeVideo, true
	case "text", "subtitle", "subtitles":
		return TrackTypeText, true
	case "metadata":
		return TrackTypeMetadata, true
	default:
		return TrackTypeUnknown, false
	}
}
