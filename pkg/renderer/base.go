package renderer

import (
	"fmt"
	"log/slog"

	"github.com/jmylchreest/playkit/pkg/media"
)

// BaseConfig configures a Base.
type BaseConfig struct {
	// Name identifies the renderer in logs and errors. Defaults to
	// "<tracktype>-renderer".
	Name string

	// TrackType is the kind of track the renderer consumes.
	TrackType media.TrackType

	// Hooks are the unit's lifecycle extension points.
	Hooks Hooks

	// FormatSupport answers format-support queries. When nil every format
	// reports FormatHandled.
	FormatSupport func(f media.Format) (Capability, error)

	// Logger for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Base implements the renderer lifecycle state machine, the stream binding
// protocol, and the synchronized reading layer. Concrete units embed *Base
// and add Render, IsReady and IsEnded.
//
// All methods except the Capabilities surface must be called from the
// playback goroutine.
type Base struct {
	name      string
	trackType media.TrackType
	hooks     Hooks
	supports  func(f media.Format) (Capability, error)
	logger    *slog.Logger

	// Identity, assigned once by Init
	initialized bool
	index       int
	playerID    PlayerID
	clock       media.Clock

	// Lifecycle and binding state
	state       State
	config      Configuration
	binding     StreamBinding
	streamFinal bool
	timeline    media.Timeline
	holder      media.FormatHolder

	// Reading state
	readPos        ReadPosition
	lastResetPosUs int64

	notifier     capabilitiesNotifier
	supportGuard supportQueryGuard
}

// NewBase creates the lifecycle core of a renderer.
func NewBase(cfg BaseConfig) *Base {
	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("%s-renderer", cfg.TrackType)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Base{
		name:      name,
		trackType: cfg.TrackType,
		hooks:     cfg.Hooks,
		supports:  cfg.FormatSupport,
		logger:    logger.With(slog.String("renderer", name)),
		state:     StateDisabled,
		timeline:  media.EmptyTimeline,
	}
}

func (b *Base) mustState(op string, want State) {
	if b.state != want {
		panic(fmt.Sprintf("renderer %s: %s while %s", b.name, op, b.state))
	}
}

// Name returns the renderer's name.
func (b *Base) Name() string {
	return b.name
}

// TrackType says which kind of track the renderer consumes.
func (b *Base) TrackType() media.TrackType {
	return b.trackType
}

// Capabilities returns the renderer's capability query surface.
func (b *Base) Capabilities() Capabilities {
	return b
}

// Init gives the renderer its index within the player's renderer set, the
// player identity, and the clock. It must be called exactly once, before
// the first Enable; a second call panics. A nil clock selects the wall
// clock.
func (b *Base) Init(index int, id PlayerID, clk media.Clock) {
	if b.initialized {
		panic(fmt.Sprintf("renderer %s: Init called twice", b.name))
	}
	b.initialized = true
	b.index = index
	b.playerID = id
	if clk == nil {
		clk = media.SystemClock
	}
	b.clock = clk

	if b.hooks.OnInit != nil {
		b.hooks.OnInit()
	}
}

// Enable moves the renderer from Disabled to Enabled: it stores the
// configuration, invokes the enabled hook, binds the initial stream, and
// resets the position to the binding's start position. positionUs is where
// playback currently is, which during a joining enable can trail the start
// position; the core reports it to the unit but reads begin at the start
// position.
func (b *Base) Enable(cfg Configuration, binding StreamBinding, positionUs int64, joining, mayRenderStartOfStream bool) error {
	b.mustState("Enable", StateDisabled)

	b.config = cfg
	b.state = StateEnabled
	b.logger.Debug("Renderer enabled",
		slog.Int64("position_us", positionUs),
		slog.Bool("joining", joining),
		slog.Bool("may_render_start_of_stream", mayRenderStartOfStream))

	if b.hooks.OnEnabled != nil {
		if err := b.hooks.OnEnabled(joining, mayRenderStartOfStream); err != nil {
			return err
		}
	}
	if err := b.bindStream(binding); err != nil {
		return err
	}
	return b.resetPosition(binding.StartPositionUs, joining)
}

// Start moves the renderer from Enabled to Started.
func (b *Base) Start() error {
	b.mustState("Start", StateEnabled)

	b.state = StateStarted
	b.logger.Debug("Renderer started")

	if b.hooks.OnStarted != nil {
		return b.hooks.OnStarted()
	}
	return nil
}

// Stop moves the renderer from Started back to Enabled. Stopping never
// fails; buffered state is kept.
func (b *Base) Stop() {
	b.mustState("Stop", StateStarted)

	b.state = StateEnabled
	b.logger.Debug("Renderer stopped")

	if b.hooks.OnStopped != nil {
		b.hooks.OnStopped()
	}
}

// Disable moves the renderer from Enabled to Disabled, unbinds the stream
// and its formats, clears the pending format holder, and clears the final
// flag.
func (b *Base) Disable() {
	b.mustState("Disable", StateEnabled)

	b.state = StateDisabled
	b.holder.Clear()
	b.binding = StreamBinding{}
	b.streamFinal = false
	b.logger.Debug("Renderer disabled")

	if b.hooks.OnDisabled != nil {
		b.hooks.OnDisabled()
	}
}

// Reset discards accumulated state while the renderer is Disabled, keeping
// it usable for a later Enable.
func (b *Base) Reset() {
	b.mustState("Reset", StateDisabled)

	if b.hooks.OnReset != nil {
		b.hooks.OnReset()
	}
}

// Release permanently retires the renderer. Only a Disabled renderer may be
// released, and a released renderer accepts no further calls.
func (b *Base) Release() {
	b.mustState("Release", StateDisabled)

	b.state = StateReleased
	b.logger.Debug("Renderer released")

	if b.hooks.OnRelease != nil {
		b.hooks.OnRelease()
	}
}

// ReplaceStream swaps in the next stream binding without interrupting
// playback. Replacing the stream after the current one was marked final
// panics: the player promised no more streams.
func (b *Base) ReplaceStream(binding StreamBinding) error {
	return b.bindStream(binding)
}

// bindStream adopts a binding as a whole. If the read cursor has a real
// position it carries over; an unset or end-of-stream cursor is
// re-initialized to the binding's start position.
func (b *Base) bindStream(binding StreamBinding) error {
	if b.streamFinal {
		panic(fmt.Sprintf("renderer %s: stream bound after the final stream", b.name))
	}
	if binding.Stream == nil {
		panic(fmt.Sprintf("renderer %s: binding a nil stream", b.name))
	}

	b.binding = binding
	if _, ok := b.readPos.Us(); !ok {
		b.readPos = ReadPositionAt(binding.StartPositionUs)
	}
	b.logger.Debug("Stream bound",
		slog.String("stream_id", binding.StreamID.String()),
		slog.Int("formats", len(binding.Formats)),
		slog.Int64("start_position_us", binding.StartPositionUs),
		slog.Int64("offset_us", binding.OffsetUs))

	if b.hooks.OnStreamChanged != nil {
		return b.hooks.OnStreamChanged(binding.Formats, binding.StartPositionUs, binding.OffsetUs, binding.StreamID)
	}
	return nil
}

// ResetPosition discards buffered state and moves the renderer to
// positionUs. The next sample the stream delivers afterwards is a key frame
// for that position.
func (b *Base) ResetPosition(positionUs int64) error {
	return b.resetPosition(positionUs, false)
}

func (b *Base) resetPosition(positionUs int64, joining bool) error {
	b.streamFinal = false
	b.lastResetPosUs = positionUs
	b.readPos = ReadPositionAt(positionUs)
	b.logger.Debug("Position reset",
		slog.Int64("position_us", positionUs),
		slog.Bool("joining", joining))

	if b.hooks.OnPositionReset != nil {
		return b.hooks.OnPositionReset(positionUs, joining)
	}
	return nil
}

// SetTimeline updates the timeline the session runs against. The unit's
// hook fires only when the new timeline differs by value from the current
// one; repeated delivery of an equal timeline is absorbed here.
func (b *Base) SetTimeline(t media.Timeline) {
	if t == nil {
		t = media.EmptyTimeline
	}
	if media.TimelinesEqual(b.timeline, t) {
		return
	}

	b.timeline = t
	b.logger.Debug("Timeline changed")

	if b.hooks.OnTimelineChanged != nil {
		b.hooks.OnTimelineChanged(t)
	}
}

// SetPlaybackSpeed tells the unit the current and target playback speeds.
// The core itself is speed-agnostic.
func (b *Base) SetPlaybackSpeed(current, target float64) error {
	if b.hooks.OnPlaybackSpeed != nil {
		return b.hooks.OnPlaybackSpeed(current, target)
	}
	return nil
}

// SupportsFormat grades the renderer's support for f.
func (b *Base) SupportsFormat(f media.Format) (Capability, error) {
	if b.supports == nil {
		return Capability{Format: FormatHandled}, nil
	}
	return b.supports(f)
}

// SupportsMixedMimeTypeAdaptation grades switching between formats whose
// container types differ. The base grade is no support.
func (b *Base) SupportsMixedMimeTypeAdaptation() (AdaptiveSupport, error) {
	return AdaptiveNotSupported, nil
}

// SetListener registers the capabilities listener, replacing any previous
// one.
func (b *Base) SetListener(l CapabilitiesListener) {
	b.notifier.set(l)
}

// ClearListener removes the capabilities listener.
func (b *Base) ClearListener() {
	b.notifier.clear()
}

// NotifyCapabilitiesChanged tells the registered listener to discard cached
// capability query results. The listener runs outside the notifier's lock,
// so it may re-enter the renderer, including replacing or clearing itself.
func (b *Base) NotifyCapabilitiesChanged() {
	b.notifier.notify(b)
}

// State returns the current lifecycle state.
func (b *Base) State() State {
	return b.state
}

// Index returns the renderer's index within the player's renderer set.
func (b *Base) Index() int {
	return b.index
}

// PlayerID returns the identity of the owning player.
func (b *Base) PlayerID() PlayerID {
	return b.playerID
}

// Clock returns the clock supplied by Init.
func (b *Base) Clock() media.Clock {
	return b.clock
}

// Configuration returns the configuration applied by the last Enable.
func (b *Base) Configuration() Configuration {
	return b.config
}

// Stream returns the bound sample stream, or nil when no stream is bound.
func (b *Base) Stream() media.SampleStream {
	return b.binding.Stream
}

// StreamFormats returns the formats of the bound stream. Callers must not
// mutate the returned slice.
func (b *Base) StreamFormats() []media.Format {
	return b.binding.Formats
}

// StreamOffsetUs returns the offset added to the bound stream's sample
// timestamps to reach the playback timebase.
func (b *Base) StreamOffsetUs() int64 {
	return b.binding.OffsetUs
}

// StreamID returns the identity of the current binding.
func (b *Base) StreamID() media.StreamID {
	return b.binding.StreamID
}

// LastResetPositionUs returns the position of the most recent reset.
func (b *Base) LastResetPositionUs() int64 {
	return b.lastResetPosUs
}

// ReadingPosition returns the renderer's read cursor.
func (b *Base) ReadingPosition() ReadPosition {
	return b.readPos
}

// Timeline returns the timeline from the most recent SetTimeline, or
// media.EmptyTimeline before the first one.
func (b *Base) Timeline() media.Timeline {
	return b.timeline
}

// FormatHolder returns the renderer's scratch holder, cleared and ready to
// pass to ReadSource.
func (b *Base) FormatHolder() *media.FormatHolder {
	b.holder.Clear()
	return &b.holder
}
