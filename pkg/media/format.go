package media

import (
	"fmt"
	"math"
	"strings"
)

// OffsetSampleRelative is the SubsampleOffsetUs value meaning that timing
// values embedded inside sample payloads are relative to the timestamp of
// the sample that carries them. Such payloads need no rewriting when a
// stream offset is applied, because the enclosing sample timestamp already
// absorbs it.
const OffsetSampleRelative int64 = math.MaxInt64

// Format describes a single elementary track: what codec it carries and the
// parameters a renderer needs to decide whether and how it can play it.
//
// Formats are treated as immutable values once published to a renderer.
type Format struct {
	// ID uniquely identifies the format within its source.
	ID string

	// Label is a human-readable track label, if the source provides one.
	Label string

	// Codec is the codec identity, either a canonical name ("h264", "aac")
	// or an RFC 6381 string from a streaming manifest ("avc1.64001f").
	Codec string

	// Language is an RFC 5646 language tag, or empty when undeclared.
	Language string

	// Bitrate is the average bitrate in bits per second, or zero if unknown.
	Bitrate int

	// Width and Height are the video dimensions in pixels, or zero for
	// non-video tracks.
	Width  int
	Height int

	// SampleRate and ChannelCount describe audio tracks, zero otherwise.
	SampleRate   int
	ChannelCount int

	// InitData holds codec initialization blobs in codec-defined order:
	// [SPS, PPS] for h264, [VPS, SPS, PPS] for h265, a single sequence
	// header OBU for av1, and a single AudioSpecificConfig for aac.
	InitData [][]byte

	// SubsampleOffsetUs is the offset that must be added to timing values
	// embedded inside sample payloads (for example cue times inside a text
	// sample) to align them with the sample timestamp. A zero value means
	// embedded times are already absolute; OffsetSampleRelative means they
	// are relative to the carrying sample and never need adjustment.
	SubsampleOffsetUs int64
}

// String returns a compact description for logs.
func (f Format) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Format(%s, codec=%s", f.ID, f.Codec)
	if f.Width > 0 || f.Height > 0 {
		fmt.Fprintf(&b, ", %dx%d", f.Width, f.Height)
	}
	if f.SampleRate > 0 {
		fmt.Fprintf(&b, ", %dHz/%dch", f.SampleRate, f.ChannelCount)
	}
	if f.Language != "" {
		fmt.Fprintf(&b, ", lang=%s", f.Language)
	}
	b.WriteString(")")
	return b.String()
}

// FormatHolder carries a format from a sample stream read back to the
// caller. A renderer hands the holder to ReadData and, when the read
// reports a format, finds it in Format.
type FormatHolder struct {
	Format *Format
}

// Clear drops any held format.
func (h *FormatHolder) Clear() {
	h.Format = nil
}
