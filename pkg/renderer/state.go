package renderer

// State is a renderer lifecycle state.
//
// The legal transitions are:
//
//	Disabled -> Enabled  (Enable)
//	Enabled  -> Started  (Start)
//	Started  -> Enabled  (Stop)
//	Enabled  -> Disabled (Disable)
//	Disabled -> Released (Release)
//
// Released is terminal. Any other transition is a programming error and
// panics without mutating the renderer.
type State int

const (
	// StateDisabled is the initial state. The renderer holds no stream.
	StateDisabled State = iota

	// StateEnabled means the renderer has a stream bound and may buffer,
	// but does not advance playback.
	StateEnabled

	// StateStarted means the renderer is actively rendering.
	StateStarted

	// StateReleased means the renderer has been retired and must not be
	// used again.
	StateReleased
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateEnabled:
		return "enabled"
	case StateStarted:
		return "started"
	case StateReleased:
		return "released"
	default:
		return "invalid"
	}
}
