package renderer_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/playkit/internal/testutil"
	"github.com/jmylchreest/playkit/pkg/media"
	"github.com/jmylchreest/playkit/pkg/renderer"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBase(t *testing.T, rec *testutil.HookRecorder) *renderer.Base {
	t.Helper()

	cfg := renderer.BaseConfig{
		Name:      "test-renderer",
		TrackType: media.TrackTypeAudio,
		Logger:    quietLogger(),
	}
	if rec != nil {
		cfg.Hooks = rec.Hooks()
	}
	b := renderer.NewBase(cfg)
	b.Init(0, renderer.NewPlayerID(), testutil.NewFakeClock(time.Unix(0, 0)))
	return b
}

func testBinding(stream media.SampleStream, startUs, offsetUs int64) renderer.StreamBinding {
	return renderer.StreamBinding{
		Stream: stream,
		Formats: []media.Format{{
			ID:                "a0",
			Codec:             "aac",
			SampleRate:        48000,
			ChannelCount:      2,
			SubsampleOffsetUs: media.OffsetSampleRelative,
		}},
		StartPositionUs: startUs,
		OffsetUs:        offsetUs,
		StreamID:        media.NewStreamID(),
	}
}

func enable(t *testing.T, b *renderer.Base, stream media.SampleStream, startUs, offsetUs int64) {
	t.Helper()
	require.NoError(t, b.Enable(renderer.Configuration{}, testBinding(stream, startUs, offsetUs), startUs, false, true))
}

func TestLifecycleCallbackOrder(t *testing.T) {
	rec := testutil.NewHookRecorder()
	b := newTestBase(t, rec)

	enable(t, b, testutil.NewFakeSampleStream(), 0, 0)
	assert.Equal(t, renderer.StateEnabled, b.State())

	require.NoError(t, b.Start())
	assert.Equal(t, renderer.StateStarted, b.State())

	b.Stop()
	assert.Equal(t, renderer.StateEnabled, b.State())

	b.Disable()
	assert.Equal(t, renderer.StateDisabled, b.State())

	b.Reset()
	b.Release()
	assert.Equal(t, renderer.StateReleased, b.State())

	assert.Equal(t, []string{
		"init",
		"enabled",
		"streamChanged",
		"positionReset",
		"started",
		"stopped",
		"disabled",
		"reset",
		"released",
	}, rec.Calls)
}

func TestIllegalTransitionsPanic(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, b *renderer.Base)
		op      func(b *renderer.Base)
		want    renderer.State
	}{
		{
			name:    "start while disabled",
			prepare: func(t *testing.T, b *renderer.Base) {},
			op:      func(b *renderer.Base) { _ = b.Start() },
			want:    renderer.StateDisabled,
		},
		{
			name:    "stop while disabled",
			prepare: func(t *testing.T, b *renderer.Base) {},
			op:      func(b *renderer.Base) { b.Stop() },
			want:    renderer.StateDisabled,
		},
		{
			name: "enable while enabled",
			prepare: func(t *testing.T, b *renderer.Base) {
				enable(t, b, testutil.NewFakeSampleStream(), 0, 0)
			},
			op: func(b *renderer.Base) {
				_ = b.Enable(renderer.Configuration{}, testBinding(testutil.NewFakeSampleStream(), 0, 0), 0, false, false)
			},
			want: renderer.StateEnabled,
		},
		{
			name: "stop while enabled",
			prepare: func(t *testing.T, b *renderer.Base) {
				enable(t, b, testutil.NewFakeSampleStream(), 0, 0)
			},
			op:   func(b *renderer.Base) { b.Stop() },
			want: renderer.StateEnabled,
		},
		{
			name: "disable while started",
			prepare: func(t *testing.T, b *renderer.Base) {
				enable(t, b, testutil.NewFakeSampleStream(), 0, 0)
				require.NoError(t, b.Start())
			},
			op:   func(b *renderer.Base) { b.Disable() },
			want: renderer.StateStarted,
		},
		{
			name: "release while enabled",
			prepare: func(t *testing.T, b *renderer.Base) {
				enable(t, b, testutil.NewFakeSampleStream(), 0, 0)
			},
			op:   func(b *renderer.Base) { b.Release() },
			want: renderer.StateEnabled,
		},
		{
			name: "reset while started",
			prepare: func(t *testing.T, b *renderer.Base) {
				enable(t, b, testutil.NewFakeSampleStream(), 0, 0)
				require.NoError(t, b.Start())
			},
			op:   func(b *renderer.Base) { b.Reset() },
			want: renderer.StateStarted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBase(t, nil)
			tt.prepare(t, b)

			assert.Panics(t, func() { tt.op(b) })
			assert.Equal(t, tt.want, b.State(), "failed transition must not change state")
		})
	}
}

func TestReleasedIsTerminal(t *testing.T) {
	b := newTestBase(t, nil)
	b.Release()
	require.Equal(t, renderer.StateReleased, b.State())

	assert.Panics(t, func() {
		_ = b.Enable(renderer.Configuration{}, testBinding(testutil.NewFakeSampleStream(), 0, 0), 0, false, false)
	})
	assert.Panics(t, func() { _ = b.Start() })
	assert.Panics(t, func() { b.Reset() })
	assert.Panics(t, func() { b.Release() })
	assert.Equal(t, renderer.StateReleased, b.State())
}

func TestIllegalTransitionLeavesBindingUntouched(t *testing.T) {
	rec := testutil.NewHookRecorder()
	b := newTestBase(t, rec)

	stream := testutil.NewFakeSampleStream()
	enable(t, b, stream, 0, 0)
	callsBefore := len(rec.Calls)

	assert.Panics(t, func() {
		_ = b.Enable(renderer.Configuration{}, testBinding(testutil.NewFakeSampleStream(), 500, 500), 500, true, true)
	})

	assert.Same(t, stream, b.Stream())
	assert.Equal(t, int64(0), b.StreamOffsetUs())
	assert.Len(t, rec.Calls, callsBefore, "no callbacks may fire for a rejected transition")
}

func TestInitTwicePanics(t *testing.T) {
	b := renderer.NewBase(renderer.BaseConfig{TrackType: media.TrackTypeVideo, Logger: quietLogger()})
	b.Init(1, renderer.NewPlayerID(), nil)

	assert.Panics(t, func() { b.Init(1, renderer.NewPlayerID(), nil) })
}

func TestInitAssignsIdentity(t *testing.T) {
	b := renderer.NewBase(renderer.BaseConfig{TrackType: media.TrackTypeVideo, Logger: quietLogger()})
	id := renderer.NewPlayerID()
	clk := testutil.NewFakeClock(time.Unix(100, 0))

	b.Init(3, id, clk)

	assert.Equal(t, 3, b.Index())
	assert.Equal(t, id, b.PlayerID())
	assert.Equal(t, media.Clock(clk), b.Clock())
	assert.Equal(t, "video-renderer", b.Name())
}

func TestEnableResetsToStartPosition(t *testing.T) {
	rec := testutil.NewHookRecorder()
	b := newTestBase(t, rec)

	// Playback is at 2000 while the binding starts at 5000; reads begin at
	// the start position.
	binding := testBinding(testutil.NewFakeSampleStream(), 5000, 250)
	require.NoError(t, b.Enable(renderer.Configuration{Tunneling: true}, binding, 2000, true, false))

	require.Len(t, rec.PositionResets, 1)
	assert.Equal(t, testutil.PositionReset{PositionUs: 5000, Joining: true}, rec.PositionResets[0])
	assert.Equal(t, int64(5000), b.LastResetPositionUs())

	got, ok := b.ReadingPosition().Us()
	require.True(t, ok)
	assert.Equal(t, int64(5000), got)

	require.Len(t, rec.StreamChanges, 1)
	assert.Equal(t, int64(5000), rec.StreamChanges[0].StartPositionUs)
	assert.Equal(t, int64(250), rec.StreamChanges[0].OffsetUs)
	assert.Equal(t, binding.StreamID, rec.StreamChanges[0].StreamID)

	assert.True(t, b.Configuration().Tunneling)
}

func TestDisableClearsBinding(t *testing.T) {
	rec := testutil.NewHookRecorder()
	b := newTestBase(t, rec)

	enable(t, b, testutil.NewFakeSampleStream(), 0, 0)
	b.MarkStreamFinal()

	b.Disable()

	assert.Nil(t, b.Stream())
	assert.Nil(t, b.StreamFormats())
	assert.False(t, b.IsStreamFinal())
	assert.True(t, b.StreamID().IsZero())

	// A fresh cycle works after disable.
	enable(t, b, testutil.NewFakeSampleStream(), 0, 0)
	assert.Equal(t, renderer.StateEnabled, b.State())
}

func TestHookErrorsAbortOperation(t *testing.T) {
	hookErr := errors.New("unit refused")

	t.Run("enabled hook", func(t *testing.T) {
		rec := testutil.NewHookRecorder()
		rec.Errs["enabled"] = hookErr
		b := newTestBase(t, rec)

		err := b.Enable(renderer.Configuration{}, testBinding(testutil.NewFakeSampleStream(), 0, 0), 0, false, false)
		require.ErrorIs(t, err, hookErr)

		// The transition itself is not rolled back.
		assert.Equal(t, renderer.StateEnabled, b.State())
		assert.NotContains(t, rec.Calls, "streamChanged")
		assert.NotContains(t, rec.Calls, "positionReset")
	})

	t.Run("stream changed hook", func(t *testing.T) {
		rec := testutil.NewHookRecorder()
		rec.Errs["streamChanged"] = hookErr
		b := newTestBase(t, rec)

		err := b.Enable(renderer.Configuration{}, testBinding(testutil.NewFakeSampleStream(), 0, 0), 0, false, false)
		require.ErrorIs(t, err, hookErr)
		assert.NotContains(t, rec.Calls, "positionReset")
	})

	t.Run("started hook", func(t *testing.T) {
		rec := testutil.NewHookRecorder()
		rec.Errs["started"] = hookErr
		b := newTestBase(t, rec)
		enable(t, b, testutil.NewFakeSampleStream(), 0, 0)

		require.ErrorIs(t, b.Start(), hookErr)
		assert.Equal(t, renderer.StateStarted, b.State())
	})
}

func TestSetTimelineNotifiesOnlyOnNewValue(t *testing.T) {
	rec := testutil.NewHookRecorder()
	b := newTestBase(t, rec)

	// The initial timeline is the empty one, so setting it again is a no-op.
	b.SetTimeline(media.EmptyTimeline)
	b.SetTimeline(nil)
	assert.Empty(t, rec.Timelines)

	first := testutil.FakeTimeline{Periods: 1}
	b.SetTimeline(first)
	b.SetTimeline(testutil.FakeTimeline{Periods: 1})
	require.Len(t, rec.Timelines, 1)
	assert.Equal(t, media.Timeline(first), b.Timeline())

	b.SetTimeline(testutil.FakeTimeline{Periods: 2})
	assert.Len(t, rec.Timelines, 2)
}

func TestSetPlaybackSpeedForwards(t *testing.T) {
	rec := testutil.NewHookRecorder()
	b := newTestBase(t, rec)

	require.NoError(t, b.SetPlaybackSpeed(1.0, 2.0))
	require.Equal(t, [][2]float64{{1.0, 2.0}}, rec.Speeds)

	speedErr := errors.New("speed unsupported")
	rec.Errs["playbackSpeed"] = speedErr
	assert.ErrorIs(t, b.SetPlaybackSpeed(2.0, 2.0), speedErr)
}

func TestNilHooksAreSkipped(t *testing.T) {
	b := newTestBase(t, nil)

	enable(t, b, testutil.NewFakeSampleStream(), 0, 0)
	require.NoError(t, b.Start())
	require.NoError(t, b.SetPlaybackSpeed(1.0, 1.0))
	b.SetTimeline(testutil.FakeTimeline{Periods: 1})
	require.NoError(t, b.ResetPosition(100))
	b.Stop()
	b.Disable()
	b.Reset()
	b.Release()

	assert.Equal(t, renderer.StateReleased, b.State())
}
