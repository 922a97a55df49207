package testutil

import (
	"github.com/jmylchreest/playkit/pkg/media"
	"github.com/jmylchreest/playkit/pkg/renderer"
)

// StreamChange captures one stream-changed callback.
type StreamChange struct {
	Formats         []media.Format
	StartPositionUs int64
	OffsetUs        int64
	StreamID        media.StreamID
}

// PositionReset captures one position-reset callback.
type PositionReset struct {
	PositionUs int64
	Joining    bool
}

// HookRecorder produces renderer.Hooks that record every invocation, for
// asserting callback order and arguments. Errs maps a callback name to an
// error that the corresponding hook will return.
type HookRecorder struct {
	Calls []string
	Errs  map[string]error

	StreamChanges  []StreamChange
	PositionResets []PositionReset
	Timelines      []media.Timeline
	Speeds         [][2]float64
}

// NewHookRecorder creates an empty recorder.
func NewHookRecorder() *HookRecorder {
	return &HookRecorder{Errs: map[string]error{}}
}

func (r *HookRecorder) record(name string) error {
	r.Calls = append(r.Calls, name)
	return r.Errs[name]
}

// Hooks returns renderer hooks wired to this recorder.
func (r *HookRecorder) Hooks() renderer.Hooks {
	return renderer.Hooks{
		OnInit: func() {
			_ = r.record("init")
		},
		OnEnabled: func(joining, mayRenderStartOfStream bool) error {
			return r.record("enabled")
		},
		OnStreamChanged: func(formats []media.Format, startPositionUs, offsetUs int64, id media.StreamID) error {
			r.StreamChanges = append(r.StreamChanges, StreamChange{
				Formats:         formats,
				StartPositionUs: startPositionUs,
				OffsetUs:        offsetUs,
				StreamID:        id,
			})
			return r.record("streamChanged")
		},
		OnPositionReset: func(positionUs int64, joining bool) error {
			r.PositionResets = append(r.PositionResets, PositionReset{
				PositionUs: positionUs,
				Joining:    joining,
			})
			return r.record("positionReset")
		},
		OnStarted: func() error {
			return r.record("started")
		},
		OnStopped: func() {
			_ = r.record("stopped")
		},
		OnDisabled: func() {
			_ = r.record("disabled")
		},
		OnReset: func() {
			_ = r.record("reset")
		},
		OnRelease: func() {
			_ = r.record("released")
		},
		OnTimelineChanged: func(t media.Timeline) {
			r.Timelines = append(r.Timelines, t)
			_ = r.record("timelineChanged")
		},
		OnPlaybackSpeed: func(current, target float64) error {
			r.Speeds = append(r.Speeds, [2]float64{current, target})
			return r.record("playbackSpeed")
		},
	}
}
