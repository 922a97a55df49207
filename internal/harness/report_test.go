package harness

import (
	"strings"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/playkit/pkg/media"
	"github.com/jmylchreest/playkit/pkg/renderer"
)

func TestViolationString(t *testing.T) {
	v := Violation{Track: "video", Tick: 17, Msg: "read cursor moved backwards"}
	assert.Equal(t, "video at tick 17: read cursor moved backwards", v.String())

	v = Violation{Track: "video", Tick: -1, Msg: "teardown panic: boom"}
	assert.Equal(t, "video: teardown panic: boom", v.String())
}

func TestReportTotals(t *testing.T) {
	rep := &Report{
		Tracks: []TrackReport{
			{Name: "video", Samples: 150, Bytes: 90_000},
			{Name: "audio", Samples: 180, Bytes: 46_080},
			{Name: "subs"},
		},
	}

	assert.Equal(t, 330, rep.TotalSamples())
	assert.Equal(t, int64(136_080), rep.TotalBytes())
	assert.False(t, rep.Failed())

	rep.addViolation("audio", 3, "boom")
	assert.True(t, rep.Failed())
}

func TestReportPrint(t *testing.T) {
	rep := &Report{
		Scenario: "default",
		Seed:     7,
		Ticks:    120,
		Tracks: []TrackReport{
			{
				Name:         "video",
				Type:         media.TrackTypeVideo,
				Codec:        "h264",
				State:        renderer.StateReleased,
				Samples:      150,
				Keyframes:    5,
				Bytes:        90_000,
				Streams:      2,
				Resets:       1,
				Ended:        true,
				ReadPosition: "end-of-stream",
				FirstTimeUs:  mo.Some[int64](1_000_000),
				LastTimeUs:   mo.Some[int64](5_966_647),
			},
			{
				Name:         "subs",
				Type:         media.TrackTypeText,
				Codec:        "webvtt",
				State:        renderer.StateReleased,
				Samples:      12,
				Cues:         12,
				ReadPosition: "end-of-stream",
				FirstTimeUs:  mo.Some[int64](1_500_000),
				LastTimeUs:   mo.Some[int64](23_500_000),
			},
			{
				Name:         "events",
				Type:         media.TrackTypeMetadata,
				Codec:        "id3",
				State:        renderer.StateReleased,
				ReadPosition: "unset",
			},
		},
	}

	var sb strings.Builder
	rep.Print(&sb)
	out := sb.String()

	assert.Contains(t, out, `scenario "default": 120 ticks, seed 7, 3 tracks, 162 samples, 90000 bytes`)
	assert.Contains(t, out, "span=1000000us..5966647us")
	assert.Contains(t, out, "cues=12")
	assert.Contains(t, out, "span=no samples")
	assert.Contains(t, out, " ended")
	assert.Contains(t, out, "no violations")
	assert.NotContains(t, out, "violations (")
}

func TestReportPrintViolations(t *testing.T) {
	rep := &Report{Scenario: "broken", Ticks: 10}
	rep.addViolation("audio", 3, "render: stream failed")
	rep.addViolation("audio", -1, "teardown panic: boom")

	var sb strings.Builder
	rep.Print(&sb)
	out := sb.String()

	assert.Contains(t, out, "violations (2):")
	assert.Contains(t, out, "audio at tick 3: render: stream failed")
	assert.Contains(t, out, "audio: teardown panic: boom")
	assert.NotContains(t, out, "no violations")
}
