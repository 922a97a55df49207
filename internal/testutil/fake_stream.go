package testutil

import (
	"github.com/jmylchreest/playkit/pkg/media"
)

// StreamEvent is one scripted outcome of a FakeSampleStream read.
type StreamEvent struct {
	Result media.ReadResult
	Format *media.Format
	Data   []byte
	TimeUs int64
	Flags  media.BufferFlags
}

// Sample returns a sample event at timeUs carrying data.
func Sample(timeUs int64, flags media.BufferFlags, data ...byte) StreamEvent {
	return StreamEvent{Result: media.ReadBuffer, TimeUs: timeUs, Flags: flags, Data: data}
}

// Keyframe returns a one-byte key frame sample event at timeUs.
func Keyframe(timeUs int64) StreamEvent {
	return Sample(timeUs, media.BufferFlagKeyFrame, 0x01)
}

// FormatChange returns a format event.
func FormatChange(f media.Format) StreamEvent {
	return StreamEvent{Result: media.ReadFormat, Format: &f}
}

// EndOfStream returns the end-of-stream event. Once reached it repeats on
// every subsequent read.
func EndOfStream() StreamEvent {
	return StreamEvent{Result: media.ReadBuffer, Flags: media.BufferFlagEndOfStream}
}

// Nothing returns an event that reports no data available for one read.
func Nothing() StreamEvent {
	return StreamEvent{Result: media.ReadNothing}
}

// FakeSampleStream replays a scripted sequence of read outcomes. It
// implements media.SampleStream.
type FakeSampleStream struct {
	events []StreamEvent
	pos    int

	ready bool
	err   error

	// Observability for assertions
	reads    int
	skips    []int64
	lastRead media.ReadFlags
}

// NewFakeSampleStream creates a stream that replays events in order and
// reports ready until exhausted.
func NewFakeSampleStream(events ...StreamEvent) *FakeSampleStream {
	return &FakeSampleStream{events: events, ready: true}
}

// ReadData implements media.SampleStream. A stream with a pending error
// keeps returning ReadNothing.
func (s *FakeSampleStream) ReadData(holder *media.FormatHolder, buf *media.SampleBuffer, flags media.ReadFlags) media.ReadResult {
	s.reads++
	s.lastRead = flags

	if s.err != nil || s.pos >= len(s.events) {
		return media.ReadNothing
	}
	ev := s.events[s.pos]

	switch ev.Result {
	case media.ReadFormat:
		holder.Format = ev.Format
		s.pos++

	case media.ReadBuffer:
		buf.Clear()
		if ev.Flags.Has(media.BufferFlagEndOfStream) {
			buf.SetFlag(media.BufferFlagEndOfStream)
			// The end marker is sticky: the event is not consumed.
		} else {
			buf.Data = append(buf.Data, ev.Data...)
			buf.TimeUs = ev.TimeUs
			buf.Flags = ev.Flags
			s.pos++
		}

	default:
		s.pos++
	}
	return ev.Result
}

// SkipData implements media.SampleStream. It discards scripted samples with
// timestamps up to positionUs and records the requested position.
func (s *FakeSampleStream) SkipData(positionUs int64) int {
	s.skips = append(s.skips, positionUs)

	skipped := 0
	for s.pos < len(s.events) {
		ev := s.events[s.pos]
		if ev.Result != media.ReadBuffer || ev.Flags.Has(media.BufferFlagEndOfStream) || ev.TimeUs > positionUs {
			break
		}
		s.pos++
		skipped++
	}
	return skipped
}

// IsReady implements media.SampleStream.
func (s *FakeSampleStream) IsReady() bool {
	return s.ready && s.err == nil
}

// Err implements media.SampleStream.
func (s *FakeSampleStream) Err() error {
	return s.err
}

// SetReady overrides the readiness the stream reports.
func (s *FakeSampleStream) SetReady(ready bool) {
	s.ready = ready
}

// FailWith puts the stream into a failed state surfaced via Err.
func (s *FakeSampleStream) FailWith(err error) {
	s.err = err
}

// Append adds further scripted events, simulating a live stream growing.
func (s *FakeSampleStream) Append(events ...StreamEvent) {
	s.events = append(s.events, events...)
}

// Reads returns how many times ReadData was called.
func (s *FakeSampleStream) Reads() int {
	return s.reads
}

// LastReadFlags returns the flags passed to the most recent ReadData.
func (s *FakeSampleStream) LastReadFlags() media.ReadFlags {
	return s.lastRead
}

// SkipCalls returns the positions passed to SkipData, in order.
func (s *FakeSampleStream) SkipCalls() []int64 {
	return s.skips
}

// Remaining returns how many scripted events have not been consumed.
func (s *FakeSampleStream) Remaining() int {
	return len(s.events) - s.pos
}
