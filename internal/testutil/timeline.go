package testutil

import "github.com/jmylchreest/playkit/pkg/media"

// FakeTimeline is a value-comparable media.Timeline.
type FakeTimeline struct {
	Periods int
	Dynamic bool
}

// Equal implements media.Timeline.
func (t FakeTimeline) Equal(other media.Timeline) bool {
	o, ok := other.(FakeTimeline)
	return ok && o == t
}
