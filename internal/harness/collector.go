package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/playkit/internal/observability"
	"github.com/jmylchreest/playkit/pkg/codec"
	"github.com/jmylchreest/playkit/pkg/media"
	"github.com/jmylchreest/playkit/pkg/renderer"
)

// renderReadBudget caps how many reads one Render call performs, so
// consumption spreads across ticks instead of draining a stream at once.
const renderReadBudget = 64

// CollectedSample is one sample a collector consumed, in playback time.
type CollectedSample struct {
	TimeUs   int64
	Size     int
	Keyframe bool
}

// Collector is a renderer that consumes samples into memory instead of
// decoding them. The harness drives one per track through the lifecycle and
// reads the collected record back out afterwards.
type Collector struct {
	*renderer.Base

	checker codec.SupportChecker
	logger  *slog.Logger

	holder media.FormatHolder
	buf    media.SampleBuffer

	samples []CollectedSample
	cues    []string
	formats []media.Format
	streams []media.StreamID
	bytes   int64
	resets  int
	ended   bool
}

var _ renderer.Renderer = (*Collector)(nil)

// NewCollector builds a collecting renderer for one track scenario.
func NewCollector(tr TrackScenario, logger *slog.Logger) (*Collector, error) {
	trackType, ok := media.ParseTrackType(tr.Type)
	if !ok {
		return nil, fmt.Errorf("track %s: unknown track type %q", tr.Name, tr.Type)
	}
	name := codec.NormalizeRFC6381(tr.Codec)
	if !codec.Known(name) {
		return nil, fmt.Errorf("track %s: unknown codec %q", tr.Name, tr.Codec)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Collector{
		logger: logger.With(slog.String("track", tr.Name)),
		checker: codec.SupportChecker{
			TrackType: trackType,
			Codecs:    []string{name},
			ProbeInit: true,
			Adaptive:  renderer.AdaptiveNotSeamless,
		},
	}
	if tr.Limits != nil {
		c.checker.MaxWidth = tr.Limits.MaxWidth
		c.checker.MaxHeight = tr.Limits.MaxHeight
		c.checker.MaxChannels = tr.Limits.MaxChannels
	}

	c.Base = renderer.NewBase(renderer.BaseConfig{
		Name:          tr.Name,
		TrackType:     trackType,
		FormatSupport: c.checker.Check,
		Logger:        logger,
		Hooks: renderer.Hooks{
			OnStreamChanged: func(_ []media.Format, _, _ int64, id media.StreamID) error {
				c.streams = append(c.streams, id)
				return nil
			},
			OnPositionReset: func(int64, bool) error {
				c.resets++
				c.ended = false
				return nil
			},
		},
	})
	return c, nil
}

// Render implements renderer.Renderer. It reads from the bound stream up to
// the per-call budget, recording every sample it consumes.
func (c *Collector) Render(positionUs, elapsedRealtimeUs int64) error {
	for reads := 0; reads < renderReadBudget; reads++ {
		c.holder.Clear()
		c.buf.Clear()

		switch c.ReadSource(&c.holder, &c.buf, 0) {
		case media.ReadNothing:
			if err := c.MaybeThrowStreamError(); err != nil {
				return c.NewPlaybackError(err, nil, false, renderer.ErrorCodeIOUnspecified)
			}
			return nil

		case media.ReadFormat:
			if err := c.onFormat(*c.holder.Format); err != nil {
				return err
			}

		case media.ReadBuffer:
			if c.buf.IsEndOfStream() {
				c.ended = true
				c.logger.Debug("End of stream rendered")
				return nil
			}
			c.consume(positionUs)
		}
	}
	return nil
}

// IsReady implements renderer.Renderer. The collector renders instantly, so
// readiness is source readiness.
func (c *Collector) IsReady() bool {
	return c.IsSourceReady()
}

// IsEnded implements renderer.Renderer.
func (c *Collector) IsEnded() bool {
	return c.ended
}

func (c *Collector) onFormat(f media.Format) error {
	support, err := c.SupportsFormat(f)
	if err != nil {
		return c.NewPlaybackError(err, &f, false, renderer.ErrorCodeFailedRuntimeCheck)
	}
	if !support.Supported() {
		code := renderer.ErrorCodeFormatUnsupported
		if support.Format == renderer.FormatExceedsCapabilities {
			code = renderer.ErrorCodeFormatExceedsCapabilities
		}
		return c.NewPlaybackError(fmt.Errorf("format %s not playable", f.ID), &f, false, code)
	}

	c.formats = append(c.formats, f)
	c.logger.Debug("Format delivered", slog.String("format", f.String()))
	return nil
}

func (c *Collector) consume(positionUs int64) {
	s := CollectedSample{
		TimeUs:   c.buf.TimeUs,
		Size:     len(c.buf.Data),
		Keyframe: c.buf.IsKeyFrame(),
	}
	c.samples = append(c.samples, s)
	c.bytes += int64(s.Size)

	if c.TrackType() == media.TrackTypeText {
		if cue, ok := decodeCue(c.buf.Data); ok {
			c.cues = append(c.cues, cue)
		}
	}

	c.logger.Log(context.Background(), observability.LevelTrace, "Sample rendered",
		slog.Int64("time_us", s.TimeUs),
		slog.Int64("position_us", positionUs),
		slog.Int("bytes", s.Size),
		slog.Bool("keyframe", s.Keyframe))
}

// Samples returns the samples consumed so far, in consumption order.
func (c *Collector) Samples() []CollectedSample {
	return c.samples
}

// Cues returns the decoded text cues consumed so far.
func (c *Collector) Cues() []string {
	return c.cues
}

// Formats returns every format the stream delivered, after offset
// adjustment.
func (c *Collector) Formats() []media.Format {
	return c.formats
}

// StreamsSeen returns the IDs of every stream bound so far.
func (c *Collector) StreamsSeen() []media.StreamID {
	return c.streams
}

// BytesRead returns the total payload bytes consumed.
func (c *Collector) BytesRead() int64 {
	return c.bytes
}

// Resets returns how many position resets the collector has seen, counting
// the one performed by Enable.
func (c *Collector) Resets() int {
	return c.resets
}
