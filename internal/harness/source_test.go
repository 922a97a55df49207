package harness

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/playkit/pkg/media"
)

func TestBuildFormat(t *testing.T) {
	tr := TrackScenario{
		Name:         "audio",
		Type:         "audio",
		Codec:        "mp4a.40.2",
		Language:     "de",
		SampleRate:   48000,
		ChannelCount: 2,
		InitData:     []string{"1190"},
	}

	f, err := buildFormat(tr)
	require.NoError(t, err)

	assert.Equal(t, "audio", f.ID)
	assert.Equal(t, "mp4a.40.2", f.Codec)
	assert.Equal(t, "de", f.Language)
	assert.Equal(t, 48000, f.SampleRate)
	require.Len(t, f.InitData, 1)
	assert.Equal(t, []byte{0x11, 0x90}, f.InitData[0])
	assert.Equal(t, media.OffsetSampleRelative, f.SubsampleOffsetUs,
		"embedded timing defaults to sample-relative")
}

func TestBuildFormatAbsoluteTiming(t *testing.T) {
	f, err := buildFormat(TrackScenario{
		Name:            "subs",
		Type:            "text",
		Codec:           "webvtt",
		SubsampleTiming: SubsampleAbsolute,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.SubsampleOffsetUs)
}

func TestBuildFormatBadInitData(t *testing.T) {
	_, err := buildFormat(TrackScenario{Name: "a", InitData: []string{"xx"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init_data[0]")
}

func TestBuildStreamLayout(t *testing.T) {
	f := media.Format{ID: "v0", Codec: "h264", SubsampleOffsetUs: media.OffsetSampleRelative}
	plan := SamplePlan{
		Count:         4,
		StartUs:       100,
		StepUs:        50,
		KeyframeEvery: 2,
		PayloadBytes:  8,
		EndOfStream:   true,
	}
	stream := buildStream(f, plan, media.TrackTypeVideo, rand.New(rand.NewSource(1)))

	var holder media.FormatHolder
	var buf media.SampleBuffer

	require.Equal(t, media.ReadFormat, stream.ReadData(&holder, &buf, 0))
	require.NotNil(t, holder.Format)
	assert.Equal(t, "v0", holder.Format.ID)

	wantTimes := []int64{100, 150, 200, 250}
	wantKeyframes := []bool{true, false, true, false}
	for i, want := range wantTimes {
		buf.Clear()
		require.Equal(t, media.ReadBuffer, stream.ReadData(&holder, &buf, 0))
		assert.Equal(t, want, buf.TimeUs)
		assert.Equal(t, wantKeyframes[i], buf.IsKeyFrame(), "sample %d", i)
		assert.Len(t, buf.Data, 8)
		assert.Equal(t, i == 0, buf.Flags.Has(media.BufferFlagFirstSample), "sample %d", i)
		assert.Equal(t, i == len(wantTimes)-1, buf.Flags.Has(media.BufferFlagLastSample), "sample %d", i)
	}

	buf.Clear()
	require.Equal(t, media.ReadBuffer, stream.ReadData(&holder, &buf, 0))
	assert.True(t, buf.IsEndOfStream())

	// The end marker is sticky
	buf.Clear()
	require.Equal(t, media.ReadBuffer, stream.ReadData(&holder, &buf, 0))
	assert.True(t, buf.IsEndOfStream())
}

func TestBuildStreamWithoutEndMarker(t *testing.T) {
	f := media.Format{ID: "m0", Codec: "id3"}
	stream := buildStream(f, SamplePlan{Count: 1, StepUs: 10, PayloadBytes: 4}, media.TrackTypeMetadata, rand.New(rand.NewSource(1)))

	var holder media.FormatHolder
	var buf media.SampleBuffer
	require.Equal(t, media.ReadFormat, stream.ReadData(&holder, &buf, 0))
	require.Equal(t, media.ReadBuffer, stream.ReadData(&holder, &buf, 0))
	assert.Equal(t, media.ReadNothing, stream.ReadData(&holder, &buf, 0))
}

func TestBuildStreamTextPayloads(t *testing.T) {
	f := media.Format{ID: "s0", Codec: "webvtt", SubsampleOffsetUs: 0}
	stream := buildStream(f, SamplePlan{Count: 2, StepUs: 1000}, media.TrackTypeText, rand.New(rand.NewSource(1)))

	var holder media.FormatHolder
	var buf media.SampleBuffer
	require.Equal(t, media.ReadFormat, stream.ReadData(&holder, &buf, 0))

	for i := 0; i < 2; i++ {
		buf.Clear()
		require.Equal(t, media.ReadBuffer, stream.ReadData(&holder, &buf, 0))
		cue, ok := decodeCue(buf.Data)
		require.True(t, ok)
		assert.Equal(t, []string{"cue 0", "cue 1"}[i], cue)
	}
}

func TestBuildStreamJitterDeterministic(t *testing.T) {
	f := media.Format{ID: "a0", Codec: "aac"}
	plan := SamplePlan{Count: 16, StepUs: 20000, JitterUs: 3000, PayloadBytes: 4}

	read := func(seed int64) []int64 {
		stream := buildStream(f, plan, media.TrackTypeAudio, rand.New(rand.NewSource(seed)))
		var holder media.FormatHolder
		var buf media.SampleBuffer
		require.Equal(t, media.ReadFormat, stream.ReadData(&holder, &buf, 0))

		times := make([]int64, 0, plan.Count)
		for {
			buf.Clear()
			if stream.ReadData(&holder, &buf, 0) != media.ReadBuffer {
				break
			}
			times = append(times, buf.TimeUs)
		}
		return times
	}

	first := read(99)
	second := read(99)
	require.Len(t, first, 16)
	assert.Equal(t, first, second, "the same seed must produce the same timestamps")

	for i, timeUs := range first {
		base := int64(i) * plan.StepUs
		assert.LessOrEqual(t, base-plan.JitterUs, timeUs, "sample %d", i)
		assert.GreaterOrEqual(t, base+plan.JitterUs, timeUs, "sample %d", i)
	}
}

func TestCueRoundTrip(t *testing.T) {
	for _, text := range []string{"hello", "cue 42", "grüße aus münchen", ""} {
		encoded := encodeCue(text)
		if text == "" {
			// A BOM alone decodes to an empty payload, which is not a cue.
			_, ok := decodeCue(encoded)
			assert.False(t, ok)
			continue
		}

		assert.Equal(t, []byte{0xFE, 0xFF}, encoded[:2], "payload carries a big-endian BOM")
		decoded, ok := decodeCue(encoded)
		require.True(t, ok, "text %q", text)
		assert.Equal(t, text, decoded)
	}
}

func TestPayloadSizing(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	assert.Len(t, payload(media.TrackTypeVideo, 0, 16, rng), 16)
	assert.Len(t, payload(media.TrackTypeAudio, 0, 0, rng), 1, "zero-size plans still produce a byte")
}
