package media

import "strings"

// BufferFlags annotate a sample buffer.
type BufferFlags uint32

const (
	// BufferFlagKeyFrame marks a sample that can be decoded without
	// reference to earlier samples.
	BufferFlagKeyFrame BufferFlags = 1 << iota

	// BufferFlagEndOfStream marks the synthetic buffer a stream produces
	// once it has no further samples. An end-of-stream buffer carries no
	// payload and no timestamp.
	BufferFlagEndOfStream

	// BufferFlagFirstSample marks the first sample of a stream.
	BufferFlagFirstSample

	// BufferFlagLastSample marks the last sample of a stream.
	BufferFlagLastSample
)

// Has reports whether all bits of flag are set.
func (f BufferFlags) Has(flag BufferFlags) bool {
	return f&flag == flag
}

// String returns a "+"-joined list of set flag names.
func (f BufferFlags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	if f.Has(BufferFlagKeyFrame) {
		names = append(names, "keyframe")
	}
	if f.Has(BufferFlagEndOfStream) {
		names = append(names, "end-of-stream")
	}
	if f.Has(BufferFlagFirstSample) {
		names = append(names, "first-sample")
	}
	if f.Has(BufferFlagLastSample) {
		names = append(names, "last-sample")
	}
	return strings.Join(names, "+")
}

// SampleBuffer is the unit of data read from a sample stream: one encoded
// access unit plus its presentation timestamp and flags. Buffers are reused
// across reads; Clear resets one for the next read while keeping its
// payload capacity.
type SampleBuffer struct {
	Data   []byte
	TimeUs int64
	Flags  BufferFlags
}

// Clear resets the buffer for reuse, retaining the payload allocation.
func (b *SampleBuffer) Clear() {
	b.Data = b.Data[:0]
	b.TimeUs = 0
	b.Flags = 0
}

// SetFlag sets flag on the buffer.
func (b *SampleBuffer) SetFlag(flag BufferFlags) {
	b.Flags |= flag
}

// IsEndOfStream reports whether this is a synthetic end-of-stream buffer.
func (b *SampleBuffer) IsEndOfStream() bool {
	return b.Flags.Has(BufferFlagEndOfStream)
}

// IsKeyFrame reports whether the sample is independently decodable.
func (b *SampleBuffer) IsKeyFrame() bool {
	return b.Flags.Has(BufferFlagKeyFrame)
}
