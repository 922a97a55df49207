// Package renderer implements the lifecycle core shared by all track
// renderers: a strict Disabled/Enabled/Started/Released state machine, the
// stream binding protocol that hands a renderer its sample source, and the
// synchronized reading layer that aligns per-stream timestamps to the
// playback timebase.
//
// Base carries all of that machinery. A concrete unit embeds *Base,
// supplies Hooks for the lifecycle points it cares about, and implements
// the per-frame Render method itself. Lifecycle methods must be called from
// the playback goroutine; misuse such as enabling an already enabled
// renderer is a programming error and panics rather than returning an
// error.
package renderer

import (
	"github.com/google/uuid"

	"github.com/jmylchreest/playkit/pkg/media"
)

// PlayerID identifies the player instance a renderer is serving.
type PlayerID struct {
	id uuid.UUID
}

// NewPlayerID generates a new PlayerID.
func NewPlayerID() PlayerID {
	return PlayerID{id: uuid.New()}
}

// String returns the canonical UUID string.
func (p PlayerID) String() string {
	return p.id.String()
}

// IsZero reports whether the ID is unset.
func (p PlayerID) IsZero() bool {
	return p.id == uuid.Nil
}

// Configuration is the player-chosen renderer configuration applied when a
// renderer is enabled.
type Configuration struct {
	// Tunneling requests platform tunneled playback for the session.
	Tunneling bool
}

// StreamBinding is everything a renderer needs to read one period of
// playback: the sample stream, the formats it will carry, the position
// playback starts from, the offset added to every sample timestamp, and an
// identity for the binding. A binding is adopted wholesale; readers never
// observe a partially replaced one.
type StreamBinding struct {
	// Stream is the sample source. It must not be nil.
	Stream media.SampleStream

	// Formats lists the formats samples on Stream may use.
	Formats []media.Format

	// StartPositionUs is the playback position the stream starts
	// rendering from, in the playback timebase.
	StartPositionUs int64

	// OffsetUs is added to every sample timestamp read from Stream to
	// convert it to the playback timebase.
	OffsetUs int64

	// StreamID distinguishes this binding from earlier ones.
	StreamID media.StreamID
}

// Renderer is the player-facing contract of a track-processing unit. Base
// provides the whole surface except Render, IsReady and IsEnded, which the
// concrete unit implements.
type Renderer interface {
	// Name returns the unit's stable name for logs and errors.
	Name() string

	// TrackType says which kind of track the unit consumes.
	TrackType() media.TrackType

	// Capabilities exposes the format-support query surface. Unlike the
	// rest of the interface it may be used from any goroutine.
	Capabilities() Capabilities

	// State returns the current lifecycle state.
	State() State

	// Init gives the renderer its index within the player's renderer set,
	// the player identity, and the clock. Called exactly once.
	Init(index int, id PlayerID, clk media.Clock)

	// Enable moves the renderer from Disabled to Enabled, binds the
	// initial stream, and positions it at the binding's start position.
	// positionUs is the current playback position, reported to the unit.
	Enable(cfg Configuration, binding StreamBinding, positionUs int64, joining, mayRenderStartOfStream bool) error

	// Start moves the renderer from Enabled to Started.
	Start() error

	// Render advances the unit: consume input, produce output, up to
	// positionUs. Called repeatedly while the renderer is Started, and
	// while Enabled to let the unit prefill.
	Render(positionUs, elapsedRealtimeUs int64) error

	// IsReady reports whether the unit can render if started.
	IsReady() bool

	// IsEnded reports whether the unit has rendered everything to the end
	// of its final stream.
	IsEnded() bool

	// ReplaceStream swaps in the next stream binding without interrupting
	// playback.
	ReplaceStream(binding StreamBinding) error

	// Stream returns the currently bound sample stream, or nil.
	Stream() media.SampleStream

	// HasReadStreamToEnd reports whether the current stream has been read
	// to its end marker.
	HasReadStreamToEnd() bool

	// ReadingPosition returns the renderer's current read cursor.
	ReadingPosition() ReadPosition

	// MarkStreamFinal records that the bound stream is the last one.
	MarkStreamFinal()

	// IsStreamFinal reports whether the bound stream is the last one.
	IsStreamFinal() bool

	// MaybeThrowStreamError surfaces a pending upstream failure, if any.
	MaybeThrowStreamError() error

	// SetTimeline updates the timeline the session runs against.
	SetTimeline(t media.Timeline)

	// ResetPosition discards buffered state and moves to positionUs.
	ResetPosition(positionUs int64) error

	// SetPlaybackSpeed tells the unit the current and target speeds.
	SetPlaybackSpeed(current, target float64) error

	// Stop moves the renderer from Started back to Enabled.
	Stop()

	// Disable moves the renderer from Enabled to Disabled and unbinds the
	// stream.
	Disable()

	// Reset discards state while Disabled, keeping the renderer usable.
	Reset()

	// Release permanently retires the renderer.
	Release()
}
