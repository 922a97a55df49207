package media

import "strings"

// ReadResult says what a sample stream read produced.
type ReadResult int

const (
	// ReadNothing means no format or sample was available.
	ReadNothing ReadResult = iota

	// ReadFormat means the holder now carries a format.
	ReadFormat

	// ReadBuffer means the sample buffer was populated, possibly with a
	// synthetic end-of-stream buffer.
	ReadBuffer
)

// String returns the result name.
func (r ReadResult) String() string {
	switch r {
	case ReadNothing:
		return "nothing"
	case ReadFormat:
		return "format"
	case ReadBuffer:
		return "buffer"
	default:
		return "invalid"
	}
}

// ReadFlags modify a single ReadData call. Streams interpret them; the
// renderer core passes them through untouched.
type ReadFlags uint32

const (
	// ReadFlagPeek returns data without advancing the stream.
	ReadFlagPeek ReadFlags = 1 << iota

	// ReadFlagRequireFormat makes the read return the current format even
	// if it has already been delivered.
	ReadFlagRequireFormat

	// ReadFlagOmitSampleData populates timestamp and flags but leaves the
	// payload out.
	ReadFlagOmitSampleData
)

// Has reports whether all bits of flag are set.
func (f ReadFlags) Has(flag ReadFlags) bool {
	return f&flag == flag
}

// String returns a "+"-joined list of set flag names.
func (f ReadFlags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	if f.Has(ReadFlagPeek) {
		names = append(names, "peek")
	}
	if f.Has(ReadFlagRequireFormat) {
		names = append(names, "require-format")
	}
	if f.Has(ReadFlagOmitSampleData) {
		names = append(names, "omit-sample-data")
	}
	return strings.Join(names, "+")
}

// SampleStream is the upstream source a renderer reads one track from.
// Timestamps produced by a stream are in the stream's own timebase; the
// renderer aligns them to the playback timebase using the binding offset.
//
// After a position reset the next sample a stream delivers is a key frame
// for that position, or starts before it. Implementations are not safe for
// concurrent use; all calls come from the playback goroutine.
type SampleStream interface {
	// ReadData attempts to read a format or sample. The holder receives a
	// format on ReadFormat; the buffer receives a sample (or an
	// end-of-stream marker) on ReadBuffer.
	ReadData(holder *FormatHolder, buf *SampleBuffer, flags ReadFlags) ReadResult

	// SkipData discards samples up to positionUs in stream time and
	// returns how many were skipped.
	SkipData(positionUs int64) int

	// IsReady reports whether a read would currently produce data.
	IsReady() bool

	// Err returns the error that has put the stream into a failed state,
	// or nil. Streams with a pending error keep returning ReadNothing.
	Err() error
}
