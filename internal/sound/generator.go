package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

const sampleRate = beep.SampleRate(44100)

// toneGenerator is a sine with an exponential decay envelope.
type toneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64
	gain  float64
	pos   int
}

func newToneGenerator(sr beep.SampleRate, freq, decay, gain float64) *toneGenerator {
	return &toneGenerator{sr: sr, freq: freq, decay: decay, gain: gain}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := g.gain * math.Exp(-g.decay*t) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}

// crackGenerator is decaying noise under a falling low tone, for a tree
// hitting the ground.
type crackGenerator struct {
	sr   beep.SampleRate
	rng  *rand.Rand
	pos  int
	span int
}

func newCrackGenerator(sr beep.SampleRate, d time.Duration) *crackGenerator {
	return &crackGenerator{
		sr:   sr,
		rng:  rand.New(rand.NewPCG(0x7106, 0xbe11)),
		span: sr.N(d),
	}
}

func (g *crackGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		progress := math.Min(float64(g.pos)/float64(g.span), 1)
		freq := 140 - 90*progress
		noise := (g.rng.Float64()*2 - 1) * 0.25 * (1 - progress)
		thump := 0.35 * math.Exp(-3*t) * math.Sin(2*math.Pi*freq*t)
		sample := clampSample(noise + thump)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *crackGenerator) Err() error {
	return nil
}

func clampSample(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func tone(freq float64, d time.Duration, decay float64) beep.Streamer {
	return beep.Take(sampleRate.N(d), newToneGenerator(sampleRate, freq, decay, 0.3))
}

// streamerFor builds a fresh, finite streamer for one cue.
func streamerFor(cue Cue) beep.Streamer {
	switch cue {
	case CueChop:
		return tone(180, 90*time.Millisecond, 40)
	case CueTimber:
		d := 700 * time.Millisecond
		return beep.Take(sampleRate.N(d), newCrackGenerator(sampleRate, d))
	case CuePickUp:
		return beep.Seq(tone(330, 60*time.Millisecond, 20), tone(440, 80*time.Millisecond, 20))
	case CueDrop:
		return tone(220, 120*time.Millisecond, 25)
	case CueDeposit:
		return beep.Seq(tone(392, 80*time.Millisecond, 12), tone(523, 120*time.Millisecond, 12))
	case CueRepaired:
		return beep.Seq(
			tone(523, 120*time.Millisecond, 6),
			tone(659, 120*time.Millisecond, 6),
			tone(784, 240*time.Millisecond, 4),
		)
	default:
		return beep.Silence(0)
	}
}
