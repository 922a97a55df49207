package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatString(t *testing.T) {
	video := Format{ID: "v0", Codec: "h264", Width: 1920, Height: 1080}
	assert.Equal(t, "Format(v0, codec=h264, 1920x1080)", video.String())

	audio := Format{ID: "a0", Codec: "aac", SampleRate: 48000, ChannelCount: 2, Language: "en"}
	assert.Equal(t, "Format(a0, codec=aac, 48000Hz/2ch, lang=en)", audio.String())
}

func TestFormatHolderClear(t *testing.T) {
	f := Format{ID: "v0", Codec: "h264"}
	holder := FormatHolder{Format: &f}

	holder.Clear()

	assert.Nil(t, holder.Format)
}
