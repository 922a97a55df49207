package harness

import (
	"fmt"
	"math/rand"

	"golang.org/x/text/encoding/unicode"

	"github.com/jmylchreest/playkit/internal/testutil"
	"github.com/jmylchreest/playkit/pkg/media"
)

// buildFormat constructs the format a track scenario describes.
func buildFormat(tr TrackScenario) (media.Format, error) {
	initData, err := tr.DecodedInitData()
	if err != nil {
		return media.Format{}, fmt.Errorf("track %s: %w", tr.Name, err)
	}

	subsampleOffsetUs := media.OffsetSampleRelative
	if tr.SubsampleTiming == SubsampleAbsolute {
		subsampleOffsetUs = 0
	}

	return media.Format{
		ID:                tr.Name,
		Codec:             tr.Codec,
		Language:          tr.Language,
		Width:             tr.Width,
		Height:            tr.Height,
		SampleRate:        tr.SampleRate,
		ChannelCount:      tr.ChannelCount,
		InitData:          initData,
		SubsampleOffsetUs: subsampleOffsetUs,
	}, nil
}

// buildStream scripts a sample stream from a plan. The format is delivered
// first, then the planned samples in stream time, then the end marker when
// the plan asks for one.
func buildStream(f media.Format, plan SamplePlan, trackType media.TrackType, rng *rand.Rand) *testutil.FakeSampleStream {
	events := make([]testutil.StreamEvent, 0, plan.Count+2)
	events = append(events, testutil.FormatChange(f))

	for i := 0; i < plan.Count; i++ {
		timeUs := plan.StartUs + int64(i)*plan.StepUs
		if plan.JitterUs > 0 {
			timeUs += rng.Int63n(2*plan.JitterUs+1) - plan.JitterUs
		}

		var flags media.BufferFlags
		if plan.KeyframeEvery > 0 && i%plan.KeyframeEvery == 0 {
			flags |= media.BufferFlagKeyFrame
		}
		if i == 0 {
			flags |= media.BufferFlagFirstSample
		}
		if i == plan.Count-1 && plan.EndOfStream {
			flags |= media.BufferFlagLastSample
		}

		events = append(events, testutil.Sample(timeUs, flags, payload(trackType, i, plan.PayloadBytes, rng)...))
	}

	if plan.EndOfStream {
		events = append(events, testutil.EndOfStream())
	}
	return testutil.NewFakeSampleStream(events...)
}

// payload produces the i-th sample payload. Text tracks carry decodable cue
// text; everything else carries random bytes.
func payload(trackType media.TrackType, i, size int, rng *rand.Rand) []byte {
	if trackType == media.TrackTypeText {
		return encodeCue(fmt.Sprintf("cue %d", i))
	}
	if size <= 0 {
		size = 1
	}
	b := make([]byte, size)
	rng.Read(b)
	return b
}

// encodeCue encodes cue text as BOM-prefixed UTF-16.
func encodeCue(text string) []byte {
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	out, err := enc.Bytes([]byte(text))
	if err != nil {
		return []byte(text)
	}
	return out
}

// decodeCue decodes a BOM-prefixed UTF-16 cue payload.
func decodeCue(data []byte) (string, bool) {
	dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil || len(out) == 0 {
		return "", false
	}
	return string(out), true
}
