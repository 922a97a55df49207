package renderer

import (
	"fmt"

	"github.com/jmylchreest/playkit/pkg/media"
)

// ErrorCode classifies a playback failure for drivers that react to error
// classes rather than individual causes.
type ErrorCode int

const (
	// ErrorCodeUnspecified is the fallback classification.
	ErrorCodeUnspecified ErrorCode = iota

	// ErrorCodeFailedRuntimeCheck indicates a violated internal invariant.
	ErrorCodeFailedRuntimeCheck

	// ErrorCodeIOUnspecified indicates an upstream read failure.
	ErrorCodeIOUnspecified

	// ErrorCodeDecodingFailed indicates the unit could not decode a sample.
	ErrorCodeDecodingFailed

	// ErrorCodeFormatExceedsCapabilities indicates a format beyond the
	// unit's limits was bound anyway.
	ErrorCodeFormatExceedsCapabilities

	// ErrorCodeFormatUnsupported indicates a format the unit cannot play
	// at all was bound.
	ErrorCodeFormatUnsupported
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeUnspecified:
		return "unspecified"
	case ErrorCodeFailedRuntimeCheck:
		return "failed-runtime-check"
	case ErrorCodeIOUnspecified:
		return "io-unspecified"
	case ErrorCodeDecodingFailed:
		return "decoding-failed"
	case ErrorCodeFormatExceedsCapabilities:
		return "format-exceeds-capabilities"
	case ErrorCodeFormatUnsupported:
		return "format-unsupported"
	default:
		return "invalid"
	}
}

// PlaybackError wraps a renderer failure with the context a player needs to
// decide between retrying the unit and failing the session.
type PlaybackError struct {
	Cause         error
	RendererName  string
	RendererIndex int
	Format        *media.Format
	FormatSupport FormatSupport
	Recoverable   bool
	Code          ErrorCode
}

// Error implements the error interface.
func (e *PlaybackError) Error() string {
	msg := fmt.Sprintf("renderer %s (index %d, code %s)", e.RendererName, e.RendererIndex, e.Code)
	if e.Format != nil {
		msg += fmt.Sprintf(", format %s support %s", e.Format.ID, e.FormatSupport)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *PlaybackError) Unwrap() error {
	return e.Cause
}

// supportQueryGuard keeps the enrichment path from recursing: if building
// one PlaybackError triggers building another, the inner one skips the
// format-support query.
type supportQueryGuard struct {
	depth int
}

func (g *supportQueryGuard) enter() bool {
	if g.depth > 0 {
		return false
	}
	g.depth++
	return true
}

func (g *supportQueryGuard) exit() {
	g.depth--
}

// NewPlaybackError wraps cause with the renderer's identity and, when a
// format is given, the renderer's own support grade for it. If the support
// query fails or the call re-enters error construction, the grade defaults
// to FormatHandled so enrichment can never mask the original failure.
func (b *Base) NewPlaybackError(cause error, format *media.Format, recoverable bool, code ErrorCode) *PlaybackError {
	support := FormatHandled
	if format != nil && b.supportGuard.enter() {
		func() {
			defer b.supportGuard.exit()
			if c, err := b.SupportsFormat(*format); err == nil {
				support = c.Format
			}
		}()
	}

	return &PlaybackError{
		Cause:         cause,
		RendererName:  b.name,
		RendererIndex: b.index,
		Format:        format,
		FormatSupport: support,
		Recoverable:   recoverable,
		Code:          code,
	}
}
