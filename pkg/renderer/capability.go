package renderer

import (
	"sync"

	"github.com/jmylchreest/playkit/pkg/media"
)

// FormatSupport grades how well a renderer handles a specific format.
type FormatSupport int

const (
	// FormatUnsupportedType means the format is a different kind of track
	// altogether, such as an audio format offered to a video renderer.
	FormatUnsupportedType FormatSupport = iota

	// FormatUnsupportedSubtype means the track type matches but the codec
	// or its initialization data does not.
	FormatUnsupportedSubtype

	// FormatExceedsCapabilities means the renderer understands the format
	// but cannot play it at these parameters, for example a resolution
	// above its decoder limit.
	FormatExceedsCapabilities

	// FormatHandled means the renderer can play the format.
	FormatHandled
)

// String returns the support grade name.
func (f FormatSupport) String() string {
	switch f {
	case FormatUnsupportedType:
		return "unsupported-type"
	case FormatUnsupportedSubtype:
		return "unsupported-subtype"
	case FormatExceedsCapabilities:
		return "exceeds-capabilities"
	case FormatHandled:
		return "handled"
	default:
		return "invalid"
	}
}

// AdaptiveSupport grades a renderer's ability to switch between formats of
// the same track mid-playback.
type AdaptiveSupport int

const (
	// AdaptiveNotSupported means format switches require re-enabling.
	AdaptiveNotSupported AdaptiveSupport = iota

	// AdaptiveNotSeamless means switches work but may glitch.
	AdaptiveNotSeamless

	// AdaptiveSeamless means switches are invisible.
	AdaptiveSeamless
)

// String returns the adaptive support grade name.
func (a AdaptiveSupport) String() string {
	switch a {
	case AdaptiveNotSupported:
		return "not-supported"
	case AdaptiveNotSeamless:
		return "not-seamless"
	case AdaptiveSeamless:
		return "seamless"
	default:
		return "invalid"
	}
}

// Capability is the result of a format-support query.
type Capability struct {
	// Format grades basic playability.
	Format FormatSupport

	// Adaptive grades mid-playback format switching.
	Adaptive AdaptiveSupport

	// Tunneling reports whether tunneled playback is available for the
	// format.
	Tunneling bool
}

// Supported reports whether the format can be played at all.
func (c Capability) Supported() bool {
	return c.Format == FormatHandled
}

// Capabilities is the query surface a track selector uses to match formats
// to renderers. Unlike the rest of a renderer it may be called from any
// goroutine.
type Capabilities interface {
	// Name returns the renderer's name.
	Name() string

	// TrackType says which kind of track the renderer consumes.
	TrackType() media.TrackType

	// SupportsFormat grades the renderer's support for f. The error
	// return is for queries that themselves fail, not for unsupported
	// formats.
	SupportsFormat(f media.Format) (Capability, error)

	// SupportsMixedMimeTypeAdaptation grades switching between formats
	// whose container types differ.
	SupportsMixedMimeTypeAdaptation() (AdaptiveSupport, error)
}

// CapabilitiesListener is notified when a renderer's capabilities may have
// changed and earlier query results should be discarded.
type CapabilitiesListener interface {
	OnCapabilitiesChanged(caps Capabilities)
}

// capabilitiesNotifier holds the single registered listener. The listener
// is always invoked outside the lock so it may re-enter the renderer,
// including replacing or clearing itself.
type capabilitiesNotifier struct {
	mu       sync.Mutex
	listener CapabilitiesListener
}

func (n *capabilitiesNotifier) set(l CapabilitiesListener) {
	n.mu.Lock()
	n.listener = l
	n.mu.Unlock()
}

func (n *capabilitiesNotifier) clear() {
	n.mu.Lock()
	n.listener = nil
	n.mu.Unlock()
}

func (n *capabilitiesNotifier) notify(caps Capabilities) {
	n.mu.Lock()
	l := n.listener
	n.mu.Unlock()

	if l != nil {
		l.OnCapabilitiesChanged(caps)
	}
}
