//go:build cgo

package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

func openSpeaker(mixer *beep.Mixer) error {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(mixer)
	return nil
}
