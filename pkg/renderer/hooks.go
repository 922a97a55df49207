package renderer

import "github.com/jmylchreest/playkit/pkg/media"

// Hooks are the extension points a concrete unit hands to Base. The state
// machine and binding protocol invoke them synchronously at the documented
// points, always after the transition or bookkeeping they announce has been
// applied. Nil entries are skipped.
//
// An error returned from a hook aborts the operation that invoked it and is
// returned to the caller; the state transition itself is not rolled back.
type Hooks struct {
	// OnInit runs at the end of Init.
	OnInit func()

	// OnEnabled runs after the transition to Enabled, before the initial
	// stream is bound. joining is true when the renderer is catching up
	// to tracks that are already playing; mayRenderStartOfStream says
	// whether output may be shown before Start.
	OnEnabled func(joining, mayRenderStartOfStream bool) error

	// OnStreamChanged runs every time a stream is bound, including the
	// bind performed by Enable. Timestamps from the new stream must have
	// offsetUs added to reach the playback timebase.
	OnStreamChanged func(formats []media.Format, startPositionUs, offsetUs int64, id media.StreamID) error

	// OnPositionReset runs after the read cursor has been moved to
	// positionUs. The unit must drop buffered output that precedes the
	// new position.
	OnPositionReset func(positionUs int64, joining bool) error

	// OnStarted runs after the transition to Started.
	OnStarted func() error

	// OnStopped runs after the transition back to Enabled.
	OnStopped func()

	// OnDisabled runs after the transition to Disabled, once the stream
	// has been unbound.
	OnDisabled func()

	// OnReset runs when the player resets a Disabled renderer.
	OnReset func()

	// OnRelease runs after the transition to Released.
	OnRelease func()

	// OnTimelineChanged runs when SetTimeline receives a timeline that
	// differs by value from the current one.
	OnTimelineChanged func(t media.Timeline)

	// OnPlaybackSpeed runs on every SetPlaybackSpeed call.
	OnPlaybackSpeed func(current, target float64) error
}
