package renderer

import (
	"fmt"

	"github.com/jmylchreest/playkit/pkg/media"
)

func (b *Base) mustStream(op string) media.SampleStream {
	if b.binding.Stream == nil {
		panic(fmt.Sprintf("renderer %s: %s with no stream bound", b.name, op))
	}
	return b.binding.Stream
}

// ReadSource reads the next format or sample from the bound stream and
// aligns it to the playback timebase. Calling it with no stream bound
// panics.
//
// Sample timestamps get the binding offset added, and the read cursor
// advances to the aligned timestamp, never backwards. An end-of-stream
// marker moves the cursor to end-of-stream; it is surfaced as a buffer read
// only once the stream has been marked final, and reads as ReadNothing
// before that, since a replacement stream may still arrive. A format whose
// embedded timing is not sample-relative is rewritten as a copy with the
// offset folded into SubsampleOffsetUs; formats already delivered to other
// holders are never mutated.
//
// flags pass through to the stream untouched.
func (b *Base) ReadSource(holder *media.FormatHolder, buf *media.SampleBuffer, flags media.ReadFlags) media.ReadResult {
	stream := b.mustStream("ReadSource")

	result := stream.ReadData(holder, buf, flags)
	switch result {
	case media.ReadBuffer:
		if buf.IsEndOfStream() {
			b.readPos = ReadPositionEnd()
			if b.streamFinal {
				return media.ReadBuffer
			}
			return media.ReadNothing
		}
		buf.TimeUs += b.binding.OffsetUs
		b.readPos = b.readPos.Advance(buf.TimeUs)

	case media.ReadFormat:
		if f := holder.Format; f != nil && f.SubsampleOffsetUs != media.OffsetSampleRelative {
			adjusted := *f
			adjusted.SubsampleOffsetUs += b.binding.OffsetUs
			holder.Format = &adjusted
		}
	}
	return result
}

// SkipSource asks the bound stream to discard samples up to positionUs in
// the playback timebase and returns how many were skipped. Skipping moves
// neither the read cursor nor the last reset position.
func (b *Base) SkipSource(positionUs int64) int {
	return b.mustStream("SkipSource").SkipData(positionUs - b.binding.OffsetUs)
}

// IsSourceReady reports whether the next ReadSource would produce data.
// Once the stream has been read to its end this depends only on whether the
// stream is final: a final exhausted stream still has its end marker to
// deliver, a non-final one has nothing until it is replaced.
func (b *Base) IsSourceReady() bool {
	if b.readPos.AtEnd() {
		return b.streamFinal
	}
	return b.mustStream("IsSourceReady").IsReady()
}

// HasReadStreamToEnd reports whether the current stream has been read to
// its end marker.
func (b *Base) HasReadStreamToEnd() bool {
	return b.readPos.AtEnd()
}

// MarkStreamFinal records that the bound stream is the last one of the
// playback; no replacement will follow. Only a position reset clears the
// flag.
func (b *Base) MarkStreamFinal() {
	b.streamFinal = true
	b.logger.Debug("Stream marked final")
}

// IsStreamFinal reports whether the bound stream has been marked final.
func (b *Base) IsStreamFinal() bool {
	return b.streamFinal
}

// MaybeThrowStreamError surfaces an upstream failure that the stream has
// been holding, without reading any data. Calling it with no stream bound
// panics.
func (b *Base) MaybeThrowStreamError() error {
	return b.mustStream("MaybeThrowStreamError").Err()
}
