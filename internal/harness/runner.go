// Package harness drives renderers through scripted playback scenarios. A
// scenario declares tracks, the samples their streams deliver, and timed
// lifecycle events; the runner plays it against collecting renderers on a
// fake clock, checks reading invariants as it goes, and reports what every
// track consumed.
package harness

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/jmylchreest/playkit/internal/config"
	"github.com/jmylchreest/playkit/internal/observability"
	"github.com/jmylchreest/playkit/internal/testutil"
	"github.com/jmylchreest/playkit/pkg/codec"
	"github.com/jmylchreest/playkit/pkg/media"
	"github.com/jmylchreest/playkit/pkg/renderer"
)

// trackRun is the live state of one track during a run.
type trackRun struct {
	scenario  TrackScenario
	collector *Collector
	format    media.Format
	events    []Event

	// Baselines for invariant checks
	lastCursorUs int64
	hasCursor    bool
	lastResets   int
	lastStreams  int

	failed bool
}

// Runner executes one scenario.
type Runner struct {
	scenario *Scenario
	cfg      config.SimConfig
	logger   *slog.Logger
	clock    *testutil.FakeClock
	start    time.Time
	rng      *rand.Rand
	seed     int64

	playerID renderer.PlayerID
	tracks   []*trackRun
}

// NewRunner prepares a runner for the scenario. Every track gets its own
// collecting renderer, initialized against a shared fake clock and player
// identity.
func NewRunner(sc *Scenario, cfg config.SimConfig, logger *slog.Logger) (*Runner, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	seed := sc.Seed
	if seed == 0 {
		seed = 1
	}
	start := time.Unix(0, 0)

	r := &Runner{
		scenario: sc,
		cfg:      cfg,
		logger:   observability.WithComponent(logger, "harness"),
		clock:    testutil.NewFakeClock(start),
		start:    start,
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		playerID: renderer.NewPlayerID(),
	}

	for i, tr := range sc.Tracks {
		col, err := NewCollector(tr, logger)
		if err != nil {
			return nil, err
		}
		format, err := buildFormat(tr)
		if err != nil {
			return nil, err
		}

		col.Init(i, r.playerID, r.clock)

		events := slices.Clone(tr.Events)
		slices.SortStableFunc(events, func(a, b Event) int {
			return cmp.Compare(a.AtTick, b.AtTick)
		})

		r.tracks = append(r.tracks, &trackRun{
			scenario:  tr,
			collector: col,
			format:    format,
			events:    events,
		})
	}
	return r, nil
}

// Run plays the scenario to completion and returns the report. The run ends
// early when ctx is done or, with fail-fast, after the first tick that
// produced a violation. Renderers are always torn down before returning.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	done := observability.TimedOperation(ctx, r.logger, "run_scenario")
	defer done()

	ticks := r.scenario.Ticks
	if ticks <= 0 {
		ticks = r.cfg.MaxTicks
	}
	interval := r.cfg.TickInterval
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}

	rep := &Report{Scenario: r.scenario.Name, Seed: r.seed, Ticks: ticks}
	r.logger.Info("Scenario starting",
		slog.String("scenario", r.scenario.Name),
		slog.Int("ticks", ticks),
		slog.Int("tracks", len(r.tracks)),
		slog.Int64("seed", r.seed))

	if r.scenario.Timeline != nil {
		t := timelineFrom(r.scenario.Timeline)
		for _, tr := range r.tracks {
			tr.collector.SetTimeline(t)
		}
	}

	var positionUs int64
	for tick := 0; tick < ticks; tick++ {
		if err := ctx.Err(); err != nil {
			r.teardown(rep)
			r.fillTrackReports(rep)
			return rep, err
		}

		for _, tr := range r.tracks {
			r.fireEvents(tr, tick, positionUs, rep)
		}
		for _, tr := range r.tracks {
			r.renderTick(tr, tick, positionUs, rep)
		}
		for _, tr := range r.tracks {
			r.checkInvariants(tr, tick, rep)
		}

		if r.cfg.FailFast && rep.Failed() {
			r.logger.Warn("Stopping on first violation", slog.Int("tick", tick))
			break
		}

		r.clock.Advance(interval)
		positionUs += interval.Microseconds()
	}

	r.teardown(rep)
	r.fillTrackReports(rep)
	return rep, nil
}

func (r *Runner) fireEvents(t *trackRun, tick int, positionUs int64, rep *Report) {
	for len(t.events) > 0 && t.events[0].AtTick <= tick {
		ev := t.events[0]
		t.events = t.events[1:]

		if err := r.apply(t, ev, positionUs); err != nil {
			rep.addViolation(t.scenario.Name, tick, fmt.Sprintf("%s: %v", ev.Action, err))
		}
	}
}

// apply fires one event. Lifecycle misuse panics inside the renderer; the
// harness reports it as a violation instead of crashing the run.
func (r *Runner) apply(t *trackRun, ev Event, positionUs int64) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	c := t.collector
	switch ev.Action {
	case ActionEnable:
		grade, err := c.Capabilities().SupportsFormat(t.format)
		if err != nil {
			return err
		}
		if !grade.Supported() {
			return fmt.Errorf("format %s grades %s", t.format.ID, grade.Format)
		}

		pos := positionUs
		if ev.PositionUs != 0 {
			pos = ev.PositionUs
		}
		binding := renderer.StreamBinding{
			Stream:          buildStream(t.format, t.scenario.Samples, c.TrackType(), r.rng),
			Formats:         []media.Format{t.format},
			StartPositionUs: t.scenario.StartPositionUs,
			OffsetUs:        t.scenario.OffsetUs,
			StreamID:        media.NewStreamID(),
		}
		return c.Enable(renderer.Configuration{Tunneling: grade.Tunneling}, binding, pos, t.scenario.Joining, ev.MayRenderStart)

	case ActionStart:
		return c.Start()

	case ActionStop:
		c.Stop()
		return nil

	case ActionDisable:
		c.Disable()
		return nil

	case ActionReset:
		c.Reset()
		return nil

	case ActionRelease:
		c.Release()
		return nil

	case ActionReplaceStream:
		plan := t.scenario.Samples
		if ev.Samples != nil {
			plan = *ev.Samples
		}
		binding := renderer.StreamBinding{
			Stream:          buildStream(t.format, plan, c.TrackType(), r.rng),
			Formats:         []media.Format{t.format},
			StartPositionUs: ev.StartPositionUs,
			OffsetUs:        ev.OffsetUs,
			StreamID:        media.NewStreamID(),
		}
		return c.ReplaceStream(binding)

	case ActionMarkFinal:
		c.MarkStreamFinal()
		return nil

	case ActionResetPosition:
		return c.ResetPosition(ev.PositionUs)

	case ActionSetTimeline:
		c.SetTimeline(timelineFrom(ev.Timeline))
		return nil

	case ActionSetSpeed:
		target := ev.TargetSpeed
		if target == 0 {
			target = ev.Speed
		}
		return c.SetPlaybackSpeed(ev.Speed, target)

	default:
		return fmt.Errorf("unknown action %q", ev.Action)
	}
}

func (r *Runner) renderTick(t *trackRun, tick int, positionUs int64, rep *Report) {
	if t.failed {
		return
	}
	c := t.collector
	if st := c.State(); st != renderer.StateEnabled && st != renderer.StateStarted {
		return
	}
	if c.Stream() == nil {
		return
	}

	elapsedUs := r.clock.Since(r.start).Microseconds()
	if err := c.Render(positionUs, elapsedUs); err != nil {
		rep.addViolation(t.scenario.Name, tick, fmt.Sprintf("render: %v", err))
		t.failed = true
	}
}

// checkInvariants verifies per-track reading invariants after a tick. The
// read cursor must never move backwards except across a position reset or a
// stream change, and a track may only report ended once its final stream is
// read to the end. Only tracks holding a stream are checked; disabling
// unbinds the stream and clears the final flag, after which the reading
// invariants no longer apply.
func (r *Runner) checkInvariants(t *trackRun, tick int, rep *Report) {
	c := t.collector
	if st := c.State(); st != renderer.StateEnabled && st != renderer.StateStarted {
		t.hasCursor = false
		return
	}

	resets, streams := c.Resets(), len(c.StreamsSeen())
	rebased := resets != t.lastResets || streams != t.lastStreams
	t.lastResets, t.lastStreams = resets, streams

	if pos, ok := c.ReadingPosition().Us(); ok {
		if !rebased && t.hasCursor && pos < t.lastCursorUs {
			rep.addViolation(t.scenario.Name, tick,
				fmt.Sprintf("read cursor moved backwards: %dus to %dus", t.lastCursorUs, pos))
		}
		t.lastCursorUs, t.hasCursor = pos, true
	} else {
		t.hasCursor = false
	}

	if c.IsEnded() {
		if !c.HasReadStreamToEnd() {
			rep.addViolation(t.scenario.Name, tick, "ended before reading the stream to its end")
		}
		if !c.IsStreamFinal() {
			rep.addViolation(t.scenario.Name, tick, "ended on a stream not marked final")
		}
	}
}

// teardown walks every track back to Released, whatever state the scenario
// left it in.
func (r *Runner) teardown(rep *Report) {
	for _, t := range r.tracks {
		c := t.collector
		func() {
			defer func() {
				if p := recover(); p != nil {
					rep.addViolation(t.scenario.Name, -1, fmt.Sprintf("teardown panic: %v", p))
				}
			}()

			if c.State() == renderer.StateStarted {
				c.Stop()
			}
			if c.State() == renderer.StateEnabled {
				c.Disable()
			}
			if c.State() == renderer.StateDisabled {
				c.Reset()
				c.Release()
			}
		}()
	}
}

func (r *Runner) fillTrackReports(rep *Report) {
	for _, t := range r.tracks {
		c := t.collector
		samples := c.Samples()

		tr := TrackReport{
			Name:         t.scenario.Name,
			Type:         c.TrackType(),
			Codec:        codec.NormalizeRFC6381(t.scenario.Codec),
			State:        c.State(),
			Samples:      len(samples),
			Keyframes:    lo.CountBy(samples, func(s CollectedSample) bool { return s.Keyframe }),
			Bytes:        c.BytesRead(),
			Cues:         len(c.Cues()),
			Formats:      len(c.Formats()),
			Streams:      len(c.StreamsSeen()),
			Resets:       c.Resets(),
			Ended:        c.IsEnded(),
			ReadPosition: c.ReadingPosition().String(),
			FirstTimeUs:  mo.None[int64](),
			LastTimeUs:   mo.None[int64](),
		}
		if len(samples) > 0 {
			tr.FirstTimeUs = mo.Some(samples[0].TimeUs)
			last := lo.MaxBy(samples, func(a, b CollectedSample) bool { return a.TimeUs > b.TimeUs })
			tr.LastTimeUs = mo.Some(last.TimeUs)
		}
		rep.Tracks = append(rep.Tracks, tr)
	}
}

// timelineFrom converts a spec to a timeline value.
func timelineFrom(spec *TimelineSpec) media.Timeline {
	if spec == nil {
		return media.EmptyTimeline
	}
	return testutil.FakeTimeline{Periods: spec.Periods, Dynamic: spec.Dynamic}
}
