package harness

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/jmylchreest/playkit/pkg/media"
	"github.com/jmylchreest/playkit/pkg/renderer"
)

// Violation is one broken expectation observed during a run.
type Violation struct {
	Track string
	Tick  int
	Msg   string
}

// String formats the violation for output. Teardown violations carry no
// tick.
func (v Violation) String() string {
	if v.Tick < 0 {
		return fmt.Sprintf("%s: %s", v.Track, v.Msg)
	}
	return fmt.Sprintf("%s at tick %d: %s", v.Track, v.Tick, v.Msg)
}

// TrackReport summarizes what one track consumed.
type TrackReport struct {
	Name         string
	Type         media.TrackType
	Codec        string
	State        renderer.State
	Samples      int
	Keyframes    int
	Bytes        int64
	Cues         int
	Formats      int
	Streams      int
	Resets       int
	Ended        bool
	ReadPosition string

	// FirstTimeUs and LastTimeUs bound the consumed sample timestamps in
	// the playback timebase. Both are empty for a track that consumed
	// nothing.
	FirstTimeUs mo.Option[int64]
	LastTimeUs  mo.Option[int64]
}

// Report is the outcome of a scenario run.
type Report struct {
	Scenario   string
	Seed       int64
	Ticks      int
	Tracks     []TrackReport
	Violations []Violation
}

func (r *Report) addViolation(track string, tick int, msg string) {
	r.Violations = append(r.Violations, Violation{Track: track, Tick: tick, Msg: msg})
}

// Failed reports whether the run broke any expectation.
func (r *Report) Failed() bool {
	return len(r.Violations) > 0
}

// TotalSamples sums consumed samples across tracks.
func (r *Report) TotalSamples() int {
	return lo.SumBy(r.Tracks, func(t TrackReport) int { return t.Samples })
}

// TotalBytes sums consumed payload bytes across tracks.
func (r *Report) TotalBytes() int64 {
	return lo.SumBy(r.Tracks, func(t TrackReport) int64 { return t.Bytes })
}

// Print writes a human-readable summary to w.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "scenario %q: %d ticks, seed %d, %d tracks, %d samples, %d bytes\n",
		r.Scenario, r.Ticks, r.Seed, len(r.Tracks), r.TotalSamples(), r.TotalBytes())

	for _, t := range r.Tracks {
		span := "no samples"
		if first, ok := t.FirstTimeUs.Get(); ok {
			last, _ := t.LastTimeUs.Get()
			span = fmt.Sprintf("%dus..%dus", first, last)
		}

		fmt.Fprintf(w, "  %-10s %-8s codec=%-8s state=%-8s samples=%d keyframes=%d bytes=%d streams=%d resets=%d span=%s cursor=%s",
			t.Name, t.Type, t.Codec, t.State, t.Samples, t.Keyframes, t.Bytes, t.Streams, t.Resets, span, t.ReadPosition)
		if t.Cues > 0 {
			fmt.Fprintf(w, " cues=%d", t.Cues)
		}
		if t.Ended {
			fmt.Fprint(w, " ended")
		}
		fmt.Fprintln(w)
	}

	if len(r.Violations) > 0 {
		fmt.Fprintf(w, "violations (%d):\n", len(r.Violations))
		for _, v := range r.Violations {
			fmt.Fprintf(w, "  %s\n", v)
		}
	} else {
		fmt.Fprintln(w, "no violations")
	}
}
