package flac

import (
	"github.com/go-audio/audio"

	"github.com/artemist-go/muflac/meta"
)

// AudioFormat returns the PCM format descriptor implied by a decoded
// STREAMINFO, for a downstream synthesis stage that turns decoded subframes
// into samples. This core never produces PCM itself.
func AudioFormat(si *meta.StreamInfo) *audio.Format {
	return &audio.Format{
		NumChannels: int(si.NumChannels),
		SampleRate:  int(si.SampleRate),
	}
}
