package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/playkit/pkg/renderer"
)

func TestReadPositionStates(t *testing.T) {
	var unset renderer.ReadPosition
	assert.True(t, unset.IsZero())
	assert.False(t, unset.AtEnd())
	_, ok := unset.Us()
	assert.False(t, ok)
	assert.Equal(t, "unset", unset.String())

	at := renderer.ReadPositionAt(1500)
	assert.False(t, at.IsZero())
	us, ok := at.Us()
	assert.True(t, ok)
	assert.Equal(t, int64(1500), us)
	assert.Equal(t, "1500us", at.String())

	end := renderer.ReadPositionEnd()
	assert.True(t, end.AtEnd())
	assert.False(t, end.IsZero())
	_, ok = end.Us()
	assert.False(t, ok)
	assert.Equal(t, "end-of-stream", end.String())
}

func TestReadPositionAdvance(t *testing.T) {
	tests := []struct {
		name string
		from renderer.ReadPosition
		to   int64
		want renderer.ReadPosition
	}{
		{name: "forward", from: renderer.ReadPositionAt(100), to: 200, want: renderer.ReadPositionAt(200)},
		{name: "backward is ignored", from: renderer.ReadPositionAt(300), to: 200, want: renderer.ReadPositionAt(300)},
		{name: "equal is kept", from: renderer.ReadPositionAt(300), to: 300, want: renderer.ReadPositionAt(300)},
		{name: "from unset", from: renderer.ReadPosition{}, to: 50, want: renderer.ReadPositionAt(50)},
		{name: "from end", from: renderer.ReadPositionEnd(), to: 50, want: renderer.ReadPositionAt(50)},
		{name: "negative target", from: renderer.ReadPositionAt(-500), to: -100, want: renderer.ReadPositionAt(-100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Advance(tt.to))
		})
	}
}
