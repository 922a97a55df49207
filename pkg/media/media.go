// Package media defines the primitives exchanged between track renderers
// and their upstream sample sources: formats, sample buffers, read results,
// stream identities, and the timeline and clock contracts.
//
// All timestamps are int64 microsecond values and carry a Us suffix. Every
// stream binding includes a fixed offset that renderers add to raw sample
// timestamps so that all tracks share one playback timebase.
package media
