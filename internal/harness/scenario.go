package harness

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/playkit/pkg/codec"
	"github.com/jmylchreest/playkit/pkg/media"
)

// Scenario event actions.
const (
	ActionEnable        = "enable"
	ActionStart         = "start"
	ActionStop          = "stop"
	ActionDisable       = "disable"
	ActionReset         = "reset"
	ActionRelease       = "release"
	ActionReplaceStream = "replace-stream"
	ActionMarkFinal     = "mark-final"
	ActionResetPosition = "reset-position"
	ActionSetTimeline   = "set-timeline"
	ActionSetSpeed      = "set-speed"
)

// Subsample timing modes for a track's formats.
const (
	// SubsampleSampleRelative means timing values embedded in sample
	// payloads are relative to the carrying sample. This is the default.
	SubsampleSampleRelative = "sample-relative"

	// SubsampleAbsolute means embedded timing values are absolute, so the
	// reading layer must fold the stream offset into the format.
	SubsampleAbsolute = "absolute"
)

// Scenario describes one scripted playback run.
type Scenario struct {
	Name string `yaml:"name"`

	// Seed drives all randomness in the run. Zero selects a fixed seed so
	// unseeded scenarios stay reproducible.
	Seed int64 `yaml:"seed"`

	// Ticks is the number of simulation ticks. Zero defers to the sim
	// configuration.
	Ticks int `yaml:"ticks"`

	// Timeline, when set, is delivered to every track before the first tick.
	Timeline *TimelineSpec `yaml:"timeline"`

	Tracks []TrackScenario `yaml:"tracks"`
}

// TimelineSpec is a value-comparable timeline description.
type TimelineSpec struct {
	Periods int  `yaml:"periods"`
	Dynamic bool `yaml:"dynamic"`
}

// TrackScenario describes one track: its format, the samples its initial
// stream delivers, and the lifecycle events that drive its renderer.
type TrackScenario struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Codec string `yaml:"codec"`

	Language     string `yaml:"language"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	SampleRate   int    `yaml:"sample_rate"`
	ChannelCount int    `yaml:"channel_count"`

	// InitData holds hex-encoded codec initialization blobs.
	InitData []string `yaml:"init_data"`

	// SubsampleTiming is "sample-relative" (default) or "absolute".
	SubsampleTiming string `yaml:"subsample_timing"`

	// OffsetUs is the binding offset added to sample timestamps to reach
	// the playback timebase.
	OffsetUs int64 `yaml:"offset_us"`

	// StartPositionUs is the binding's start position.
	StartPositionUs int64 `yaml:"start_position_us"`

	// Joining enables the track as one catching up to others already
	// playing.
	Joining bool `yaml:"joining"`

	// Limits bound what the track's renderer accepts.
	Limits *LimitsSpec `yaml:"limits"`

	// Samples plans the initial stream.
	Samples SamplePlan `yaml:"samples"`

	Events []Event `yaml:"events"`
}

// LimitsSpec bounds the formats a track's renderer accepts. Zero fields are
// unbounded.
type LimitsSpec struct {
	MaxWidth    int `yaml:"max_width"`
	MaxHeight   int `yaml:"max_height"`
	MaxChannels int `yaml:"max_channels"`
}

// SamplePlan generates the samples one stream delivers.
type SamplePlan struct {
	Count int `yaml:"count"`

	// StartUs and StepUs lay out timestamps in the stream timebase.
	StartUs int64 `yaml:"start_us"`
	StepUs  int64 `yaml:"step_us"`

	// KeyframeEvery marks every n-th sample as a key frame. Zero marks
	// none.
	KeyframeEvery int `yaml:"keyframe_every"`

	// PayloadBytes sizes the random payload of non-text samples.
	PayloadBytes int `yaml:"payload_bytes"`

	// JitterUs randomly shifts each timestamp by up to this much in either
	// direction.
	JitterUs int64 `yaml:"jitter_us"`

	// EndOfStream appends the end-of-stream marker after the last sample.
	EndOfStream bool `yaml:"end_of_stream"`
}

// Event fires one lifecycle action at a tick. Fields beyond Action apply
// only to the actions that read them.
type Event struct {
	AtTick int    `yaml:"at_tick"`
	Action string `yaml:"action"`

	// PositionUs is the seek target for reset-position and the playback
	// position reported to enable. For enable, zero means the current
	// playback position; reads start at the track's start position either
	// way.
	PositionUs int64 `yaml:"position_us,omitempty"`

	// MayRenderStart lets an enabling renderer show output before Start.
	MayRenderStart bool `yaml:"may_render_start,omitempty"`

	// StartPositionUs and OffsetUs shape the binding of replace-stream.
	StartPositionUs int64 `yaml:"start_position_us,omitempty"`
	OffsetUs        int64 `yaml:"offset_us,omitempty"`

	// Samples plans the replacement stream; nil reuses the track's plan.
	Samples *SamplePlan `yaml:"samples,omitempty"`

	// Timeline is the timeline delivered by set-timeline.
	Timeline *TimelineSpec `yaml:"timeline,omitempty"`

	// Speed and TargetSpeed feed set-speed. A zero target repeats Speed.
	Speed       float64 `yaml:"speed,omitempty"`
	TargetSpeed float64 `yaml:"target_speed,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario: %w", err)
	}
	defer f.Close()

	sc, err := ParseScenario(f)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes and validates a YAML scenario. Unknown fields are
// rejected.
func ParseScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the scenario for contradictions before a run.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name required")
	}
	if s.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", s.Ticks)
	}
	if len(s.Tracks) == 0 {
		return fmt.Errorf("scenario needs at least one track")
	}

	seen := make(map[string]bool, len(s.Tracks))
	for i := range s.Tracks {
		tr := &s.Tracks[i]
		if err := tr.validate(s.Ticks); err != nil {
			return fmt.Errorf("track %d (%s): %w", i, tr.Name, err)
		}
		if seen[tr.Name] {
			return fmt.Errorf("duplicate track name %q", tr.Name)
		}
		seen[tr.Name] = true
	}
	return nil
}

func (t *TrackScenario) validate(ticks int) error {
	if t.Name == "" {
		return fmt.Errorf("name required")
	}
	if _, ok := media.ParseTrackType(t.Type); !ok {
		return fmt.Errorf("unknown track type %q", t.Type)
	}
	if !codec.Known(t.Codec) {
		return fmt.Errorf("unknown codec %q", t.Codec)
	}
	switch t.SubsampleTiming {
	case "", SubsampleSampleRelative, SubsampleAbsolute:
	default:
		return fmt.Errorf("unknown subsample_timing %q", t.SubsampleTiming)
	}
	if _, err := t.DecodedInitData(); err != nil {
		return err
	}
	if err := t.Samples.validate(); err != nil {
		return fmt.Errorf("samples: %w", err)
	}

	for i, ev := range t.Events {
		if err := ev.validate(ticks); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

func (p *SamplePlan) validate() error {
	if p.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", p.Count)
	}
	if p.Count > 0 && p.StepUs <= 0 {
		return fmt.Errorf("step_us must be positive, got %d", p.StepUs)
	}
	if p.PayloadBytes < 0 {
		return fmt.Errorf("payload_bytes must not be negative, got %d", p.PayloadBytes)
	}
	if p.JitterUs < 0 {
		return fmt.Errorf("jitter_us must not be negative, got %d", p.JitterUs)
	}
	return nil
}

func (e *Event) validate(ticks int) error {
	if e.AtTick < 0 {
		return fmt.Errorf("at_tick must not be negative, got %d", e.AtTick)
	}
	if ticks > 0 && e.AtTick >= ticks {
		return fmt.Errorf("at_tick %d never fires within %d ticks", e.AtTick, ticks)
	}

	switch e.Action {
	case ActionEnable, ActionStart, ActionStop, ActionDisable, ActionReset,
		ActionRelease, ActionReplaceStream, ActionMarkFinal, ActionResetPosition:
	case ActionSetTimeline:
		if e.Timeline == nil {
			return fmt.Errorf("set-timeline needs a timeline")
		}
	case ActionSetSpeed:
		if e.Speed <= 0 {
			return fmt.Errorf("set-speed needs a positive speed, got %v", e.Speed)
		}
	default:
		return fmt.Errorf("unknown action %q", e.Action)
	}

	if e.Samples != nil {
		if err := e.Samples.validate(); err != nil {
			return fmt.Errorf("samples: %w", err)
		}
	}
	return nil
}

// DecodedInitData decodes the track's hex-encoded initialization blobs.
func (t *TrackScenario) DecodedInitData() ([][]byte, error) {
	if len(t.InitData) == 0 {
		return nil, nil
	}
	out := make([][]byte, 0, len(t.InitData))
	for i, s := range t.InitData {
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("init_data[%d]: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// DefaultScenario is a four-track playback exercising the common lifecycle:
// enable and start, a mid-run seek, a stream replacement across periods, a
// speed change, and end of stream. The metadata track is stopped and
// disabled mid-run and never reaches its end.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:     "default",
		Seed:     7,
		Ticks:    120,
		Timeline: &TimelineSpec{Periods: 2},
		Tracks: []TrackScenario{
			{
				Name:     "video",
				Type:     "video",
				Codec:    "avc1.64001f",
				Width:    1920,
				Height:   1080,
				OffsetUs: 1_000_000,
				Samples: SamplePlan{
					Count:         90,
					StepUs:        33_333,
					KeyframeEvery: 30,
					PayloadBytes:  600,
					EndOfStream:   true,
				},
				Events: []Event{
					{AtTick: 0, Action: ActionEnable, MayRenderStart: true},
					{AtTick: 1, Action: ActionStart},
					{AtTick: 3, Action: ActionSetSpeed, Speed: 1.0, TargetSpeed: 2.0},
					{AtTick: 10, Action: ActionReplaceStream, StartPositionUs: 4_000_000, OffsetUs: 4_000_000,
						Samples: &SamplePlan{
							Count:         60,
							StepUs:        33_333,
							KeyframeEvery: 30,
							PayloadBytes:  600,
							EndOfStream:   true,
						}},
					{AtTick: 12, Action: ActionMarkFinal},
				},
			},
			{
				Name:         "audio",
				Type:         "audio",
				Codec:        "mp4a.40.2",
				SampleRate:   44100,
				ChannelCount: 2,
				InitData:     []string{"1210"}, // AAC-LC, 44100 Hz, stereo
				OffsetUs:     1_000_000,
				Samples: SamplePlan{
					Count:         180,
					StepUs:        21_333,
					KeyframeEvery: 1,
					PayloadBytes:  256,
					JitterUs:      2_000,
					EndOfStream:   true,
				},
				Events: []Event{
					{AtTick: 0, Action: ActionEnable, MayRenderStart: true},
					{AtTick: 1, Action: ActionStart},
					{AtTick: 2, Action: ActionResetPosition, PositionUs: 1_500_000},
					{AtTick: 5, Action: ActionSetTimeline, Timeline: &TimelineSpec{Periods: 3}},
					{AtTick: 8, Action: ActionMarkFinal},
				},
			},
			{
				Name:            "subs",
				Type:            "text",
				Codec:           "webvtt",
				Language:        "en",
				OffsetUs:        1_000_000,
				SubsampleTiming: SubsampleAbsolute,
				Samples: SamplePlan{
					Count:       12,
					StartUs:     500_000,
					StepUs:      2_000_000,
					EndOfStream: true,
				},
				Events: []Event{
					{AtTick: 0, Action: ActionEnable, MayRenderStart: true},
					{AtTick: 1, Action: ActionStart},
					{AtTick: 4, Action: ActionMarkFinal},
				},
			},
			{
				Name:  "events",
				Type:  "metadata",
				Codec: "id3",
				Samples: SamplePlan{
					Count:        8,
					StepUs:       10_000_000,
					PayloadBytes: 32,
				},
				Events: []Event{
					{AtTick: 0, Action: ActionEnable, MayRenderStart: true},
					{AtTick: 1, Action: ActionStart},
					{AtTick: 40, Action: ActionStop},
					{AtTick: 41, Action: ActionDisable},
				},
			},
		},
	}
}
