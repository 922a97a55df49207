package media

// Timeline is the media structure a playback session runs against. The
// renderer core never inspects it; it only stores the latest value and
// notifies the unit when a genuinely different one arrives, so the contract
// is value equality alone.
type Timeline interface {
	// Equal reports whether other describes the same timeline value.
	Equal(other Timeline) bool
}

type emptyTimeline struct{}

func (emptyTimeline) Equal(other Timeline) bool {
	if other == nil {
		return true
	}
	_, ok := other.(emptyTimeline)
	return ok
}

// EmptyTimeline is the timeline every renderer holds before the player
// supplies a real one.
var EmptyTimeline Timeline = emptyTimeline{}

// TimelinesEqual compares two timelines by value, treating nil as
// EmptyTimeline.
func TimelinesEqual(a, b Timeline) bool {
	if a == nil {
		a = EmptyTimeline
	}
	if b == nil {
		b = EmptyTimeline
	}
	return a.Equal(b)
}
