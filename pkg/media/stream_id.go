package media

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// StreamID identifies one stream binding. Consecutive bindings of the same
// renderer get distinct IDs, which keeps samples from an old stream from
// being attributed to its replacement.
type StreamID ulid.ULID

// NewStreamID generates a new StreamID.
func NewStreamID() StreamID {
	return StreamID(ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader))
}

// ParseStreamID parses a StreamID from its string form.
func ParseStreamID(s string) (StreamID, error) {
	id, err := ulid.Parse(s)
	if err != nil {
		return StreamID{}, fmt.Errorf("invalid stream ID: %w", err)
	}
	return StreamID(id), nil
}

// MustParseStreamID parses a StreamID and panics on error.
func MustParseStreamID(s string) StreamID {
	id, err := ParseStreamID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical ULID string.
func (s StreamID) String() string {
	return ulid.ULID(s).String()
}

// IsZero reports whether the ID is unset.
func (s StreamID) IsZero() bool {
	return ulid.ULID(s).Compare(ulid.ULID{}) == 0
}

// MarshalText implements encoding.TextMarshaler.
func (s StreamID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StreamID) UnmarshalText(text []byte) error {
	id, err := ParseStreamID(string(text))
	if err != nil {
		return err
	}
	*s = id
	return nil
}
