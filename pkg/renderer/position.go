package renderer

import "strconv"

type readPositionKind uint8

const (
	positionUnset readPositionKind = iota
	positionAt
	positionEnd
)

// ReadPosition is a renderer's read cursor: the latest timestamp, in the
// playback timebase, that the renderer believes it has read from its
// stream. It distinguishes three cases that a plain integer cannot: no
// position established yet, an ordinary position, and "end of stream
// observed". The last one means only that the current stream instance is
// exhausted; whether the track is finished also depends on the stream
// being marked final.
//
// The zero value is the unset position.
type ReadPosition struct {
	kind readPositionKind
	us   int64
}

// ReadPositionAt returns a cursor at us.
func ReadPositionAt(us int64) ReadPosition {
	return ReadPosition{kind: positionAt, us: us}
}

// ReadPositionEnd returns the cursor that marks an observed end of stream.
func ReadPositionEnd() ReadPosition {
	return ReadPosition{kind: positionEnd}
}

// Us returns the cursor timestamp. The second return is false when the
// cursor is unset or at end of stream.
func (p ReadPosition) Us() (int64, bool) {
	return p.us, p.kind == positionAt
}

// AtEnd reports whether the cursor marks an observed end of stream.
func (p ReadPosition) AtEnd() bool {
	return p.kind == positionEnd
}

// IsZero reports whether the cursor is unset.
func (p ReadPosition) IsZero() bool {
	return p.kind == positionUnset
}

// Advance returns the cursor moved forward to us. A cursor at a later
// timestamp is unchanged; unset and end-of-stream cursors adopt us.
func (p ReadPosition) Advance(us int64) ReadPosition {
	if p.kind == positionAt && p.us >= us {
		return p
	}
	return ReadPosition{kind: positionAt, us: us}
}

// String formats the cursor for logs.
func (p ReadPosition) String() string {
	switch p.kind {
	case positionAt:
		return strconv.FormatInt(p.us, 10) + "us"
	case positionEnd:
		return "end-of-stream"
	default:
		return "unset"
	}
}
